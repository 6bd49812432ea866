package generation

import (
	"fmt"
	"strings"
)

// Kind selects the prompt template and the payload shape of a generation.
type Kind string

const (
	KindMath       Kind = "math"
	KindCrossword  Kind = "crossword"
	KindQuiz       Kind = "quiz"
	KindAssignment Kind = "assignment"
	KindJeopardy   Kind = "jeopardy"
	KindStorybook  Kind = "storybook"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindMath, KindCrossword, KindQuiz, KindAssignment, KindJeopardy, KindStorybook}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsList reports whether the payload of k is a JSON array.
func (k Kind) IsList() bool {
	return k == KindMath || k == KindCrossword || k == KindQuiz
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, s)
	}
	return k, nil
}
