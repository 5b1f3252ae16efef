// Package store provides a small observable state container: one state
// value, a set of subscriber callbacks, and optional durable persistence.
// Components typically subscribe in Mounted and unsubscribe in WillUnmount,
// routing store changes into their own SetState.
package store

import (
	"fmt"
	"time"

	"github.com/go-fern/fern/pkg/errors"
)

// Store holds a single state value and notifies subscribers on change.
//
// The listener set is owned by the store instance; share state between
// components by passing the store by reference. Store follows fern's
// single-threaded execution model and performs no locking of its own.
type Store[T any] struct {
	value     T
	listeners map[int]func(T)
	nextID    int
	persist   persister[T]
}

// Option configures a Store at construction time.
type Option[T any] func(*Store[T])

// New creates a store holding initial. When a persistence option is given
// and a previously saved value exists, the saved value replaces initial;
// load failures are reported and the store starts from initial in memory.
func New[T any](initial T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.persist != nil {
		if v, ok, err := s.persist.load(); err != nil {
			errors.Report(&errors.UIError{
				Op:   "store.New",
				Kind: errors.KindStorage,
				Err:  err,
			})
		} else if ok {
			s.value = v
		}
	}
	return s
}

// State returns the current state value.
func (s *Store[T]) State() T {
	return s.value
}

// SetState replaces the state with update's return value, persists it when
// persistence is configured, and notifies every subscriber. A persistence
// failure is reported and the store keeps operating in memory. A panicking
// subscriber is reported and does not prevent the remaining subscribers
// from running.
func (s *Store[T]) SetState(update func(T) T) {
	if update == nil {
		return
	}
	s.value = update(s.value)
	if s.persist != nil {
		if err := s.persist.save(s.value); err != nil {
			errors.Report(&errors.UIError{
				Op:   "store.SetState",
				Kind: errors.KindStorage,
				Err:  err,
			})
		}
	}
	for _, listener := range s.listeners {
		s.notify(listener)
	}
}

// Subscribe registers a listener called with the new state after every
// SetState, and returns a function that removes it. A nil listener is a
// configuration error and panics.
func (s *Store[T]) Subscribe(listener func(T)) (unsubscribe func()) {
	if listener == nil {
		panic(fmt.Sprintf("store: Subscribe called with nil listener on %T", s))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Store[T]) notify(listener func(T)) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportHookError(&errors.HookError{
				Hook:       "listener",
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	listener(s.value)
}
