package services

import (
	"sync"
	"time"
)

// FeedEvent is one entry in the in-process notification feed.
type FeedEvent struct {
	Sequence      uint64    `json:"sequence"`
	Type          string    `json:"type"` // info|success|warning|error
	Message       string    `json:"message"`
	ApplicationID int       `json:"application_id,omitempty"`
	At            time.Time `json:"at"`
}

// NotificationFeed is an append-only event log with bounded eviction:
// the last maxEvents entries are kept, older ones are dropped.
// Subscribers receive every event emitted after they subscribed; slow
// subscribers miss events instead of blocking the emitter.
type NotificationFeed struct {
	mu        sync.RWMutex
	events    []FeedEvent
	maxEvents int
	nextSeq   uint64
	subs      map[int]chan FeedEvent
	nextSubID int
}

const defaultFeedSize = 100

func NewNotificationFeed(maxEvents int) *NotificationFeed {
	if maxEvents <= 0 {
		maxEvents = defaultFeedSize
	}
	return &NotificationFeed{
		maxEvents: maxEvents,
		subs:      make(map[int]chan FeedEvent),
	}
}

// Emit appends an event and fans it out to subscribers. The fan-out
// happens under the lock: the sends are non-blocking, and cancel closes
// channels under the same lock, so a send can never hit a closed channel.
func (f *NotificationFeed) Emit(eventType, message string, applicationID int) FeedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextSeq++
	event := FeedEvent{
		Sequence:      f.nextSeq,
		Type:          eventType,
		Message:       message,
		ApplicationID: applicationID,
		At:            time.Now(),
	}

	f.events = append(f.events, event)
	if len(f.events) > f.maxEvents {
		f.events = f.events[len(f.events)-f.maxEvents:]
	}

	for _, ch := range f.subs {
		select {
		case ch <- event:
		default:
		}
	}

	return event
}

// Recent returns up to n of the newest events, oldest first.
func (f *NotificationFeed) Recent(n int) []FeedEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.events) {
		n = len(f.events)
	}
	out := make([]FeedEvent, n)
	copy(out, f.events[len(f.events)-n:])
	return out
}

// Subscribe registers a listener. The returned cancel func must be
// called to release the channel.
func (f *NotificationFeed) Subscribe(buffer int) (<-chan FeedEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}

	f.mu.Lock()
	id := f.nextSubID
	f.nextSubID++
	ch := make(chan FeedEvent, buffer)
	f.subs[id] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if existing, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(existing)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Feed is the process-wide notification feed used by the controllers.
var Feed = NewNotificationFeed(defaultFeedSize)
