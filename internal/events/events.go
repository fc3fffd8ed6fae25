// Package events is the keyed store for monitoring-event cards: area
// surveillance events, RF signal detections and vessel investigations.
// It sits outside the linking core; linked track points and missions
// originate from these events but the store never touches bindings.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/seawatch/seawatch/internal/model/core"
)

// Sink receives saved events for write-behind persistence.
type Sink interface {
	EventSaved(e core.Event)
}

// Store is a thread-safe keyed collection of monitoring events.
// Accessors return value snapshots; stored events only change under the
// write lock.
type Store struct {
	mu      sync.RWMutex
	events  map[string]core.Event
	order   []string
	counter int
	log     zerolog.Logger
	now     func() time.Time
	sinks   []Sink
}

// NewStore creates an empty event store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		events: make(map[string]core.Event),
		log:    log.With().Str("component", "events").Logger(),
		now:    time.Now,
	}
}

// SetClock injects a clock for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// AddSink registers a persistence sink.
func (s *Store) AddSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Save inserts or overwrites an event. An empty id gets a generated
// <kind>-<seq> id. Returns the final id.
func (s *Store) Save(e core.Event) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		s.counter++
		e.ID = fmt.Sprintf("%s-%03d", e.Kind, s.counter)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if _, ok := s.events[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.events[e.ID] = e
	s.notify(e)
	s.log.Debug().Str("eventId", e.ID).Str("kind", string(e.Kind)).Msg("event saved")
	return e.ID
}

// Get returns a copy of the stored event, or false.
func (s *Store) Get(id string) (core.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	return e, ok
}

// Update applies fn to the stored event under the lock and stamps
// UpdatedAt. Returns false for an unknown id.
func (s *Store) Update(id string, fn func(*core.Event)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return false
	}
	fn(&e)
	e.UpdatedAt = s.now().UTC()
	s.events[id] = e
	s.notify(e)
	return true
}

// Delete removes an event. Returns false for an unknown id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false
	}
	delete(s.events, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns copies of all events in insertion order.
func (s *Store) All() []core.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.events[id])
	}
	return out
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *Store) notify(e core.Event) {
	for _, sink := range s.sinks {
		sink.EventSaved(e)
	}
}
