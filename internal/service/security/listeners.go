package security

import (
	"context"
	"slices"
	"sync"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// listenerRegistry is an ordered, copy-on-write list of listeners.
// Registering the same listener twice keeps both registrations.
type listenerRegistry struct {
	// mu guards listeners; the slice itself is never modified in place.
	mu        sync.Mutex
	listeners []StatusListener
}

func (r *listenerRegistry) add(l StatusListener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]StatusListener, 0, len(r.listeners)+1)
	next = append(next, r.listeners...)
	r.listeners = append(next, l)
}

// remove drops the earliest registration of l, if any.
func (r *listenerRegistry) remove(l StatusListener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.Index(r.listeners, l)
	if i < 0 {
		return
	}

	r.listeners = slices.Concat(r.listeners[:i], r.listeners[i+1:])
}

func (r *listenerRegistry) snapshot() []StatusListener {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listeners
}

func (r *listenerRegistry) len() int {
	return len(r.snapshot())
}

func (r *listenerRegistry) alarmStatusChanged(ctx context.Context, status domain.AlarmStatus) {
	for _, l := range r.snapshot() {
		l.AlarmStatusChanged(ctx, status)
	}
}

func (r *listenerRegistry) catDetected(ctx context.Context, detected bool) {
	for _, l := range r.snapshot() {
		l.CatDetected(ctx, detected)
	}
}

func (r *listenerRegistry) sensorsChanged(ctx context.Context) {
	for _, l := range r.snapshot() {
		l.SensorsChanged(ctx)
	}
}
