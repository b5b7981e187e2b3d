package journal

import (
	"context"
	"sync"
)

type Memory struct {
	mu     sync.Mutex
	events []Event
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(_ context.Context, e Event) error {
	e.Stamp()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *Memory) ByKind(k Kind) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// ListByOrder returns the newest events for orderID first.
func (m *Memory) ListByOrder(_ context.Context, orderID int64, limit int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	evs := m.Events()
	var out []Event
	for i := len(evs) - 1; i >= 0 && len(out) < limit; i-- {
		if evs[i].OrderID == orderID {
			out = append(out, evs[i])
		}
	}
	return out, nil
}
