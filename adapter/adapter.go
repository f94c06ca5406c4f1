// Package adapter defines the session event-bus boundary.
//
// Adapters publish session lifecycle notifications (frames loaded, load
// failed, playback started/stopped) to downstream systems. The session
// owns the adapter lifecycle; publish failures are logged and never
// affect playback.
package adapter

import (
	"context"
	"sync"

	"github.com/lithica-io/flipbook/types"
)

// Adapter publishes session lifecycle events to a downstream system.
type Adapter interface {
	// Publish sends a session event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *types.SessionEvent) error

	// Close releases adapter resources.
	Close() error
}

// Stub is an in-memory Adapter for tests. It records published events
// and can be primed to fail.
type Stub struct {
	mu     sync.Mutex
	events []*types.SessionEvent
	err    error
}

// NewStub creates a stub adapter.
func NewStub() *Stub {
	return &Stub{}
}

// Fail makes subsequent publishes return err (nil restores).
func (s *Stub) Fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Publish implements Adapter.
func (s *Stub) Publish(_ context.Context, event *types.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

// Close implements Adapter.
func (s *Stub) Close() error { return nil }

// Events returns the published events in order.
func (s *Stub) Events() []*types.SessionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*types.SessionEvent(nil), s.events...)
}
