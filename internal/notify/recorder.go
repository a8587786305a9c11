package notify

import (
	"context"
	"sync"
)

// Recorder captures published events in memory. Tests use it in place of
// the AMQP publisher so workflow assertions never need a broker.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent

	// FailFor makes Publish return the given error for matching addresses,
	// to exercise the fire-and-forget contract.
	FailFor map[string]error
}

type RecordedEvent struct {
	Addr    string
	Kind    EventKind
	Payload any
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, addr string, kind EventKind, payload any) error {
	if addr == "" {
		return nil
	}
	if err, ok := r.FailFor[addr]; ok {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{Addr: addr, Kind: kind, Payload: payload})
	return nil
}

func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) EventsFor(addr string) []RecordedEvent {
	var out []RecordedEvent
	for _, ev := range r.Events() {
		if ev.Addr == addr {
			out = append(out, ev)
		}
	}
	return out
}
