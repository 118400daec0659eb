package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is what the application layer needs from an aggregate to
// drain its recorded events after a successful save.
type AggregateRoot interface {
	GetID() uuid.UUID
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot carries the identity, audit timestamps and optimistic
// locking version common to every aggregate. Domain events accumulate on
// the struct until drained; they never persist.
type BaseAggregateRoot struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int           `gorm:"not null;default:1"`
	events    []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot assigns a fresh identity at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

func (a *BaseAggregateRoot) GetID() uuid.UUID {
	return a.ID
}

// IncrementVersion bumps the optimistic locking version. Mutating methods
// call it so a stale concurrent save fails its conditional update.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent records an event for publication after the save commits
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// GetDomainEvents returns the events recorded since the last drain
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.events
}

// ClearDomainEvents drops recorded events once they have been published
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.events = nil
}
