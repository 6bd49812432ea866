package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for classes.
var (
	ErrEmptyClassName       = validationError("class name cannot be empty")
	ErrInvalidGrade         = validationError("grade must be between 1 and 12")
	ErrInvalidStudentCount  = validationError("student count cannot be negative")
	ErrClassDescriptionSize = validationError("class description is too long")
)

// MaxClassDescriptionLength bounds the free text that is fed into prompts.
const MaxClassDescriptionLength = 2000

// Class is a group of students owned by a teacher. Its description is used as
// free-text context for content generation.
type Class struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Grade        int       `json:"grade"`
	StudentCount int       `json:"student_count"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClass creates a class owned by ownerID.
func NewClass(ownerID uuid.UUID, name string, grade, studentCount int, description string) (*Class, error) {
	if ownerID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	now := time.Now().UTC()
	class := &Class{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(name),
		Grade:        grade,
		StudentCount: studentCount,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := class.Validate(); err != nil {
		return nil, err
	}
	return class, nil
}

// Validate checks if the Class has valid data.
func (c *Class) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if c.OwnerID == uuid.Nil {
		return ErrEmptyUserID
	}
	if c.Name == "" {
		return ErrEmptyClassName
	}
	if c.Grade < 1 || c.Grade > 12 {
		return ErrInvalidGrade
	}
	if c.StudentCount < 0 {
		return ErrInvalidStudentCount
	}
	if len(c.Description) > MaxClassDescriptionLength {
		return ErrClassDescriptionSize
	}
	return nil
}

// Update replaces the editable fields and validates the result.
func (c *Class) Update(name string, grade, studentCount int, description string) error {
	updated := *c
	updated.Name = strings.TrimSpace(name)
	updated.Grade = grade
	updated.StudentCount = studentCount
	updated.Description = description
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}
