package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetUserID() uuid.UUID
}

// OwnedAggregateRoot provides common fields for aggregate roots scoped to an
// owning user. Every read and write against an owned aggregate is filtered by
// UserID; cross-user visibility is never permitted.
type OwnedAggregateRoot struct {
	BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// GetUserID returns the owning user ID
func (a *OwnedAggregateRoot) GetUserID() uuid.UUID {
	return a.UserID
}

// NewOwnedAggregateRoot creates a new user-scoped aggregate root
func NewOwnedAggregateRoot(userID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseEntity: NewBaseEntity(),
		UserID:     userID,
	}
}
