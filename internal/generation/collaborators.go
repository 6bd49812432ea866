package generation

import (
	"context"
	"encoding/base64"
)

// TextRequest is one call to a text model.
type TextRequest struct {
	Model           string
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
}

// TextResponse is the raw reply of a text model. TokensUsed is 0 when the
// provider reported no usage.
type TextResponse struct {
	Text       string
	TokensUsed int
}

// TextGenerator performs a single text model call.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error)
}

// Image is an image returned by a model, either as raw bytes or already
// base64 encoded depending on the provider.
type Image struct {
	Bytes  []byte
	Base64 string
}

// Encoded returns the image as standard base64 text and false when the image is empty.
func (img Image) Encoded() (string, bool) {
	if img.Base64 != "" {
		return img.Base64, true
	}
	if len(img.Bytes) == 0 {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(img.Bytes), true
}

// ImageGenerator asks model for one image. It returns ErrNoImage when the
// model answered without an image part.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model, prompt string) (Image, error)
}
