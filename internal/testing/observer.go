package testing

import (
	"fmt"
	"sync"

	"github.com/imamik/dropvpn/internal/provisioning"
)

// MockObserver records events and printf lines. Copies returned by
// WithFields share the recording.
type MockObserver struct {
	mu     *sync.Mutex
	events *[]provisioning.Event
	lines  *[]string
	fields map[string]string
}

var _ provisioning.Observer = (*MockObserver)(nil)

// NewMockObserver creates an empty recording observer.
func NewMockObserver() *MockObserver {
	return &MockObserver{
		mu:     &sync.Mutex{},
		events: &[]provisioning.Event{},
		lines:  &[]string{},
	}
}

// Printf records a formatted line.
func (o *MockObserver) Printf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.lines = append(*o.lines, fmt.Sprintf(format, v...))
}

// Event records e with the observer's fields merged in.
func (o *MockObserver) Event(e provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.fields) > 0 {
		merged := make(map[string]string, len(o.fields)+len(e.Fields))
		for k, v := range o.fields {
			merged[k] = v
		}
		for k, v := range e.Fields {
			merged[k] = v
		}
		e.Fields = merged
	}
	*o.events = append(*o.events, e)
}

// Progress records a progress event.
func (o *MockObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields returns an observer sharing this recording.
func (o *MockObserver) WithFields(fields map[string]string) provisioning.Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &MockObserver{mu: o.mu, events: o.events, lines: o.lines, fields: merged}
}

// Events returns all recorded events.
func (o *MockObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), *o.events...)
}

// EventsOfType returns the recorded events of type t.
func (o *MockObserver) EventsOfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Lines returns all recorded printf lines.
func (o *MockObserver) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), *o.lines...)
}
