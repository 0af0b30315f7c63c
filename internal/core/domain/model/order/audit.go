package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// AuditNote is an append-only record of an administrator override: who forced
// which transition, when, and why. Notes are never edited or deleted.
type AuditNote struct {
	id         kernel.UUID
	actorID    kernel.UUID
	fromStatus Status
	toStatus   Status
	reason     string
	createdAt  time.Time
}

// NewAuditNote creates a validated audit note for a forced transition.
func NewAuditNote(actorID kernel.UUID, from, to Status, reason string, createdAt time.Time) (AuditNote, error) {
	if err := actorID.Validate(); err != nil {
		return AuditNote{}, err
	}
	if reason == "" {
		return AuditNote{}, errs.NewValueIsRequiredError("override reason")
	}

	return AuditNote{
		id:         kernel.NewUUID(),
		actorID:    actorID,
		fromStatus: from,
		toStatus:   to,
		reason:     reason,
		createdAt:  createdAt,
	}, nil
}

// RestoreAuditNote reconstructs an audit note from persistence.
func RestoreAuditNote(id, actorID kernel.UUID, from, to Status, reason string, createdAt time.Time) AuditNote {
	return AuditNote{
		id:         id,
		actorID:    actorID,
		fromStatus: from,
		toStatus:   to,
		reason:     reason,
		createdAt:  createdAt,
	}
}

// ID returns the note's unique identifier.
func (n AuditNote) ID() kernel.UUID {
	return n.id
}

// ActorID returns the administrator who forced the transition.
func (n AuditNote) ActorID() kernel.UUID {
	return n.actorID
}

// FromStatus returns the status the order held before the override.
func (n AuditNote) FromStatus() Status {
	return n.fromStatus
}

// ToStatus returns the forced status.
func (n AuditNote) ToStatus() Status {
	return n.toStatus
}

// Reason returns the mandatory override justification.
func (n AuditNote) Reason() string {
	return n.reason
}

// CreatedAt returns when the override happened.
func (n AuditNote) CreatedAt() time.Time {
	return n.createdAt
}
