package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event published through the outbox.
// The stream name doubles as the message topic.
type Event interface {
	GetEventHeader() Header
	GetStreamName() string
}

type Header struct {
	ID        uuid.UUID
	Timestamp time.Time
}

func (h *Header) GetEventHeader() Header {
	return *h
}

func NewEventHeader() Header {
	return Header{
		ID:        uuid.New(),
		Timestamp: time.Now(),
	}
}

// Recorder collects events an aggregate raises until the repository
// publishes them in the same transaction as the state change.
type Recorder struct {
	events []Event
}

func (r *Recorder) AddEvent(event Event) {
	if r == nil {
		return
	}
	r.events = append(r.events, event)
}

func (r *Recorder) GetUncommittedEvents() []Event {
	if r == nil {
		return nil
	}
	return r.events
}

func (r *Recorder) MarkEventsAsCommitted() {
	if r == nil {
		return
	}
	r.events = []Event{}
}
