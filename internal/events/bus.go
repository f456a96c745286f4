// Package events carries cross-component notifications that the original
// page dispatched as DOM custom events. Consumers subscribe explicitly;
// there are no process-wide mutable globals.
package events

import (
	"sync"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// VerbDataLoaded is published exactly once per successful document load.
type VerbDataLoaded struct {
	VerbID   int
	Document *domain.VerbDocument
}

// VerbRendered is published after a section fragment has been rendered.
type VerbRendered struct {
	VerbID  int
	Preverb string
}

// Bus is a small synchronous publish/subscribe hub. Handlers run on the
// publisher's goroutine; a handler must not publish back into the bus.
type Bus struct {
	mu       sync.RWMutex
	loaded   []func(VerbDataLoaded)
	rendered []func(VerbRendered)
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnVerbDataLoaded registers a handler for VerbDataLoaded events.
func (b *Bus) OnVerbDataLoaded(fn func(VerbDataLoaded)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = append(b.loaded, fn)
}

// OnVerbRendered registers a handler for VerbRendered events.
func (b *Bus) OnVerbRendered(fn func(VerbRendered)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rendered = append(b.rendered, fn)
}

// PublishVerbDataLoaded delivers the event to all registered handlers.
func (b *Bus) PublishVerbDataLoaded(ev VerbDataLoaded) {
	b.mu.RLock()
	handlers := b.loaded
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(ev)
	}
}

// PublishVerbRendered delivers the event to all registered handlers.
func (b *Bus) PublishVerbRendered(ev VerbRendered) {
	b.mu.RLock()
	handlers := b.rendered
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(ev)
	}
}
