package shared

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Topic string `json:"topic"`
		Count int    `json:"count"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
		invalid bool
	}{
		{name: "valid json", body: `{"topic": "fractions", "count": 3}`},
		{name: "trailing comma", body: `{"topic": "x",}`, invalid: true},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "two documents", body: `{"topic": "a"} {"topic": "b"}`, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.body))
			var got payload
			err := DecodeJSON(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.invalid:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, payload{Topic: "fractions", Count: 3}, got)
			}
		})
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})
	var target struct{}
	err := DecodeJSON(req, &target)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type selfValidating struct {
	Name string `validate:"required"`
}

func (s *selfValidating) Validate() error {
	if s.Name == "invalid" {
		return errors.New("invalid name")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&selfValidating{Name: "ok"}))
	assert.Error(t, ValidateRequest(&selfValidating{Name: "invalid"}))
	// Validate takes precedence over the struct tags.
	assert.NoError(t, ValidateRequest(&selfValidating{}))

	type tagged struct {
		Email string `validate:"required,email"`
	}
	assert.NoError(t, ValidateRequest(&tagged{Email: "teacher@school.edu"}))
	assert.Error(t, ValidateRequest(&tagged{Email: "nope"}))
}
