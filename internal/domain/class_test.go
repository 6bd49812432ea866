package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClass(t *testing.T) {
	owner := uuid.New()

	class, err := NewClass(owner, " 3B ", 3, 28, "Likes space and dinosaurs")

	require.NoError(t, err)
	assert.Equal(t, owner, class.OwnerID)
	assert.Equal(t, "3B", class.Name)
	assert.Equal(t, 3, class.Grade)
	assert.Equal(t, 28, class.StudentCount)
}

func TestNewClassAllowsEmptyDescription(t *testing.T) {
	class, err := NewClass(uuid.New(), "4A", 4, 22, "")
	require.NoError(t, err)
	assert.Empty(t, class.Description)
}

func TestNewClassValidation(t *testing.T) {
	owner := uuid.New()
	tests := []struct {
		name    string
		owner   uuid.UUID
		cname   string
		grade   int
		count   int
		desc    string
		wantErr error
	}{
		{"no owner", uuid.Nil, "3B", 3, 1, "", ErrEmptyUserID},
		{"empty name", owner, "", 3, 1, "", ErrEmptyClassName},
		{"grade zero", owner, "3B", 0, 1, "", ErrInvalidGrade},
		{"grade thirteen", owner, "3B", 13, 1, "", ErrInvalidGrade},
		{"negative count", owner, "3B", 3, -1, "", ErrInvalidStudentCount},
		{"huge description", owner, "3B", 3, 1, strings.Repeat("a", MaxClassDescriptionLength+1), ErrClassDescriptionSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClass(tt.owner, tt.cname, tt.grade, tt.count, tt.desc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClassUpdateKeepsOriginalOnError(t *testing.T) {
	class, err := NewClass(uuid.New(), "3B", 3, 28, "old")
	require.NoError(t, err)

	err = class.Update("3B", 99, 28, "new")
	assert.ErrorIs(t, err, ErrInvalidGrade)
	assert.Equal(t, 3, class.Grade)
	assert.Equal(t, "old", class.Description)

	require.NoError(t, class.Update("3C", 4, 30, "new"))
	assert.Equal(t, "3C", class.Name)
	assert.Equal(t, 4, class.Grade)
	assert.Equal(t, 30, class.StudentCount)
	assert.Equal(t, "new", class.Description)
}
