package provisioning

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Stage is a point in the readiness lifecycle of a provisioned instance.
type Stage int

// Stages in the order an instance passes through them. StageFailed can be
// entered from any of the waiting stages.
const (
	StageRequested Stage = iota
	StageCreating
	StageAddressPending
	StageAddressResolved
	StageShellPending
	StageShellReachable
	StageFailed
)

var stageNames = map[Stage]string{
	StageRequested:       "requested",
	StageCreating:        "creating",
	StageAddressPending:  "address-pending",
	StageAddressResolved: "address-resolved",
	StageShellPending:    "shell-pending",
	StageShellReachable:  "shell-reachable",
	StageFailed:          "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Terminal reports whether no further transition is allowed from s.
func (s Stage) Terminal() bool {
	return s == StageShellReachable || s == StageFailed
}

// canFail reports whether s is a stage that waits on the provider or host.
func (s Stage) canFail() bool {
	return s == StageCreating || s == StageAddressPending || s == StageShellPending
}

// ErrInvalidTransition is returned for a transition the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid stage transition")

// Transition records one stage change.
type Transition struct {
	From   Stage
	To     Stage
	Reason string
	At     time.Time
}

// Tracker enforces the readiness lifecycle of one instance. Every accepted
// transition is reported to the observer and the time spent in the stage that
// was left is recorded in metrics. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	current  Stage
	reason   string
	entered  time.Time
	history  []Transition
	observer Observer
	metrics  *Metrics
	now      func() time.Time
}

// NewTracker returns a tracker in StageRequested. observer and metrics may be nil.
func NewTracker(observer Observer, metrics *Metrics) *Tracker {
	return &Tracker{
		current:  StageRequested,
		entered:  time.Now(),
		observer: observer,
		metrics:  metrics,
		now:      time.Now,
	}
}

// SetObserver replaces the observer that receives transition events.
func (t *Tracker) SetObserver(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = o
}

// Stage returns the current stage.
func (t *Tracker) Stage() Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Reason returns the failure reason once the tracker is in StageFailed.
func (t *Tracker) Reason() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

// History returns a copy of all accepted transitions.
func (t *Tracker) History() []Transition {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Transition(nil), t.history...)
}

// Advance moves to the stage directly after the current one. Skipping a
// stage, moving backwards or leaving a terminal stage is rejected.
func (t *Tracker) Advance(to Stage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	from := t.current
	if from.Terminal() || to == StageFailed || to != from+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	t.transition(from, to, "")
	return nil
}

// Fail moves to StageFailed with reason. Only the creating and pending stages
// can fail.
func (t *Tracker) Fail(reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	from := t.current
	if !from.canFail() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, StageFailed)
	}
	t.reason = reason
	t.transition(from, StageFailed, reason)
	return nil
}

// transition must be called with mu held.
func (t *Tracker) transition(from, to Stage, reason string) {
	at := t.now()
	t.metrics.ObserveStage(from, at.Sub(t.entered))

	t.current = to
	t.entered = at
	t.history = append(t.history, Transition{From: from, To: to, Reason: reason, At: at})

	if t.observer == nil {
		return
	}
	fields := map[string]string{"from": from.String(), "to": to.String()}
	msg := fmt.Sprintf("%s -> %s", from, to)
	if reason != "" {
		fields["reason"] = reason
		msg += ": " + reason
	}
	t.observer.Event(Event{
		Type:      EventStageChanged,
		Message:   msg,
		Timestamp: at,
		Fields:    fields,
	})
}
