package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Text is a string that also accepts JSON numbers and booleans, which models
// regularly emit for answers such as 4 or true.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*t = Text(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected text, got %s", truncate(data))
		}
		*t = Text(n.String())
	}
	return nil
}

// Int is an integer that also accepts numeric strings such as "3" and
// integral floats such as 3.0. Fractions and values outside the int32 range
// are rejected.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return fmt.Errorf("expected integer, got %s", truncate(data))
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("integer out of range: %s", truncate(data))
	}
	*i = Int(f)
	return nil
}

// MathProblem is one math exercise and its answer.
type MathProblem struct {
	Q Text `json:"q" validate:"required"`
	A Text `json:"a" validate:"required"`
}

// CrosswordWord is a crossword answer and its clue.
type CrosswordWord struct {
	Word Text `json:"word" validate:"required"`
	Clue Text `json:"clue" validate:"required"`
}

// QuizQuestion is a multiple-choice question. Answer is the text of the
// correct option.
type QuizQuestion struct {
	Question Text   `json:"question" validate:"required"`
	Options  []Text `json:"options"  validate:"min=2,dive,required"`
	Answer   Text   `json:"answer"   validate:"required"`
}

// Assignment is a worksheet of numbered questions.
type Assignment struct {
	Title     Text                 `json:"title"     validate:"required"`
	Subject   Text                 `json:"subject"`
	Grade     Text                 `json:"grade"`
	Questions []AssignmentQuestion `json:"questions" validate:"required,dive"`
}

// AssignmentQuestion is one worksheet question. Options is empty for open questions.
type AssignmentQuestion struct {
	Num     Int    `json:"num"`
	Text    Text   `json:"text"              validate:"required"`
	Options []Text `json:"options,omitempty"`
	Answer  Text   `json:"answer"            validate:"required"`
}

// JeopardyBoard is a Jeopardy game board.
type JeopardyBoard struct {
	Topic      Text               `json:"topic"`
	Categories []JeopardyCategory `json:"categories" validate:"required,min=1,dive"`
}

// JeopardyCategory is one column of a board.
type JeopardyCategory struct {
	Name      Text               `json:"name"      validate:"required"`
	Questions []JeopardyQuestion `json:"questions" validate:"required,min=1,dive"`
}

// JeopardyQuestion is one cell of a board.
type JeopardyQuestion struct {
	Points   Int  `json:"points"   validate:"gte=0"`
	Question Text `json:"question" validate:"required"`
	Answer   Text `json:"answer"   validate:"required"`
}

// Storybook is an illustrated children's story.
type Storybook struct {
	Title       Text        `json:"title"`
	Description Text        `json:"description"`
	AgeGroup    Text        `json:"age_group"`
	Genre       Text        `json:"genre"`
	Language    Text        `json:"language"`
	Pages       []StoryPage `json:"pages" validate:"required,dive"`
}

// StoryPage is one page of a storybook. ImageBase64 is nil when no
// illustration could be produced; the page is still valid.
type StoryPage struct {
	PageNumber         Int     `json:"page_number"`
	Text               Text    `json:"text"                validate:"required"`
	IllustrationPrompt Text    `json:"illustration_prompt"`
	ImageBase64        *string `json:"image_base64"`
}

// Missing reports how many pages have no illustration.
func (s *Storybook) Missing() int {
	n := 0
	for _, p := range s.Pages {
		if p.ImageBase64 == nil {
			n++
		}
	}
	return n
}

var payloadValidator = validator.New()

// listEnvelope lets the validator dive into top-level arrays.
type listEnvelope[T any] struct {
	Items []T `validate:"dive"`
}

// DecodePayload decodes raw JSON into the typed payload for kind and
// validates it. The result is []MathProblem, []CrosswordWord, []QuizQuestion,
// *Assignment, *JeopardyBoard or *Storybook.
//
// List kinds also accept an object wrapping the array under a single key,
// as in {"questions": [...]}. Any decoding or validation failure wraps
// ErrSchemaMismatch.
func DecodePayload(kind Kind, raw json.RawMessage) (any, error) {
	if kind.IsList() {
		raw = unwrapList(raw)
	}

	switch kind {
	case KindMath:
		return decodeList[MathProblem](raw)
	case KindCrossword:
		return decodeList[CrosswordWord](raw)
	case KindQuiz:
		return decodeList[QuizQuestion](raw)
	case KindAssignment:
		return decodeObject[Assignment](raw)
	case KindJeopardy:
		return decodeObject[JeopardyBoard](raw)
	case KindStorybook:
		return decodeObject[Storybook](raw)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrSchemaMismatch)
	}
	if err := payloadValidator.Struct(listEnvelope[T]{Items: items}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return items, nil
}

func decodeObject[T any](raw json.RawMessage) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrSchemaMismatch)
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if err := payloadValidator.Struct(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return &v, nil
}

// unwrapList returns the array inside {"key": [...]} and raw otherwise.
func unwrapList(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || len(obj) != 1 {
		return raw
	}
	for _, v := range obj {
		if v = bytes.TrimSpace(v); len(v) > 0 && v[0] == '[' {
			return v
		}
	}
	return raw
}

func truncate(b []byte) string {
	const limit = 32
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
