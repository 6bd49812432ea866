package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrNoTokens is returned when a usage record would carry no token spend.
var ErrNoTokens = validationError("usage record requires a positive token count")

// UsageRecord accounts the tokens one generation call spent.
type UsageRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Feature   string    `json:"feature"`
	Tokens    int       `json:"tokens"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUsageRecord builds a record for tokens spent by userID on feature.
// Records are only created for a positive token count.
func NewUsageRecord(userID uuid.UUID, feature string, tokens int) (*UsageRecord, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if tokens <= 0 {
		return nil, ErrNoTokens
	}
	return &UsageRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Feature:   feature,
		Tokens:    tokens,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// TeacherUsage is one row of the admin analytics report.
// Teachers without usage appear with zero tokens and no last activity.
type TeacherUsage struct {
	UserID      uuid.UUID  `json:"user_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	TotalTokens int64      `json:"total_tokens"`
	LastActive  *time.Time `json:"last_active"`
}
