// Package extract recovers a JSON value from the free-form text a language
// model returns. Strategies run in a fixed order and the first one that yields
// valid JSON wins:
//
//  1. the whole reply, trimmed
//  2. the interior of the first fenced code block (optionally tagged json)
//  3. the span from the first '{' to the last '}' (or '[' to ']')
//
// Only well-formedness is checked here. Shape validation belongs to the caller.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Stage names the strategy that produced a value.
type Stage int

const (
	StageNone Stage = iota
	StageDirect
	StageFenced
	StageSubstring
)

func (s Stage) String() string {
	switch s {
	case StageDirect:
		return "direct"
	case StageFenced:
		return "fenced"
	case StageSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Strategy tries to pull a JSON document out of text.
type Strategy struct {
	Stage Stage
	Find  func(text string) (json.RawMessage, bool)
}

// Strategies is the ordered fallback chain used by Parse.
var Strategies = []Strategy{
	{Stage: StageDirect, Find: direct},
	{Stage: StageFenced, Find: fenced},
	{Stage: StageSubstring, Find: substring},
}

// Result is the outcome of Parse. TokensUsed is copied from the input
// whether or not a value was found.
type Result struct {
	Value      json.RawMessage
	Stage      Stage
	TokensUsed int
}

// OK reports whether a JSON value was recovered.
func (r Result) OK() bool {
	return r.Stage != StageNone
}

// Parse runs Strategies over text and stops at the first success. A reply
// without any recoverable JSON yields a Result with Stage StageNone and no
// Value; it is not an error.
func Parse(text string, tokensUsed int) Result {
	for _, s := range Strategies {
		if v, ok := s.Find(text); ok {
			return Result{Value: v, Stage: s.Stage, TokensUsed: tokensUsed}
		}
	}
	return Result{Stage: StageNone, TokensUsed: tokensUsed}
}

func direct(text string) (json.RawMessage, bool) {
	return valid(strings.TrimSpace(text))
}

var fenceRe = regexp.MustCompile("(?s)```(?i:json)?\\s*(.*?)```")

func fenced(text string) (json.RawMessage, bool) {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return valid(strings.TrimSpace(m[1]))
}

// substring tries the bracket pair whose opening character comes first, then
// the other one. The span is not balance-checked, so prose containing braces
// before the payload defeats it.
func substring(text string) (json.RawMessage, bool) {
	pairs := [2][2]byte{{'{', '}'}, {'[', ']'}}
	obj, arr := strings.IndexByte(text, '{'), strings.IndexByte(text, '[')
	if arr >= 0 && (obj < 0 || arr < obj) {
		pairs[0], pairs[1] = pairs[1], pairs[0]
	}

	for _, p := range pairs {
		start := strings.IndexByte(text, p[0])
		end := strings.LastIndexByte(text, p[1])
		if start < 0 || end <= start {
			continue
		}
		if v, ok := valid(text[start : end+1]); ok {
			return v, true
		}
	}
	return nil, false
}

func valid(candidate string) (json.RawMessage, bool) {
	if candidate == "" || !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}
