package shared

import (
	"slices"

	"github.com/google/uuid"
)

// AggregateRoot is an entity that records domain events until a service
// publishes them after the write succeeds.
type AggregateRoot interface {
	Identity() uuid.UUID
	PendingEvents() []DomainEvent
	TakeEvents() []DomainEvent
}

// AggregateBase is embedded by users, categories, products and orders
type AggregateBase struct {
	BaseEntity
	pending []DomainEvent `gorm:"-"`
}

// NewAggregateBase returns an aggregate with a fresh identity
func NewAggregateBase() AggregateBase {
	return AggregateBase{BaseEntity: NewBaseEntity()}
}

// Raise records event for later publication
func (a *AggregateBase) Raise(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns a copy of the unpublished events
func (a *AggregateBase) PendingEvents() []DomainEvent {
	return slices.Clone(a.pending)
}

// TakeEvents returns the unpublished events and forgets them
func (a *AggregateBase) TakeEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}

// ClearEvents drops unpublished events
func (a *AggregateBase) ClearEvents() {
	a.pending = nil
}
