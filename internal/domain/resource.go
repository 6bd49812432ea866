package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for resources.
var (
	ErrEmptyResourceTitle   = validationError("resource title cannot be empty")
	ErrEmptyResourceType    = validationError("resource type cannot be empty")
	ErrEmptyResourceContent = validationError("resource content cannot be empty")
)

// Resource is a piece of generated material a teacher chose to keep.
// Content is the JSON document as edited on the client; it is stored opaquely.
type Resource struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewResource creates a resource owned by ownerID.
func NewResource(ownerID uuid.UUID, title, resourceType, content string) (*Resource, error) {
	r := &Resource{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(title),
		Type:      strings.ToLower(strings.TrimSpace(resourceType)),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks if the Resource has valid data.
func (r *Resource) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if r.OwnerID == uuid.Nil {
		return ErrEmptyUserID
	}
	if r.Title == "" {
		return ErrEmptyResourceTitle
	}
	if r.Type == "" {
		return ErrEmptyResourceType
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyResourceContent
	}
	return nil
}
