package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded for admin mutations.
const (
	AuditTeacherCreated      = "teacher.created"
	AuditTeacherDeleted      = "teacher.deleted"
	AuditOrganizationCreated = "organization.created"
	AuditPaymentRecorded     = "payment.recorded"
)

// AuditEntry records one administrative mutation.
type AuditEntry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuditEntry creates an entry for action performed by actorID on target.
func NewAuditEntry(actorID uuid.UUID, action, target string) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
}
