package domain

import (
	"sync"
	"time"
)

type Event interface {
	Type() string
	PublishedAt() time.Time
}

// NoCopy makes aggregates lockable and flags accidental copies in vet.
type NoCopy struct {
	sync.Mutex
}

// Aggregate records events raised by a domain object until they are popped
// and handed to the message bus.
type Aggregate struct {
	NoCopy
	events []Event
}

func (a *Aggregate) PopEvents() []Event {
	events := a.events
	a.events = make([]Event, 0)
	return events
}

func (a *Aggregate) PushEvent(e Event) {
	a.events = append(a.events, e)
}

// BaseEvent carries the publication time shared by all events.
type BaseEvent struct {
	At time.Time
}

func NewBaseEvent() BaseEvent {
	return BaseEvent{At: time.Now().UTC()}
}

func (e BaseEvent) PublishedAt() time.Time {
	return e.At
}
