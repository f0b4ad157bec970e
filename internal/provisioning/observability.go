package provisioning

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Phase names a state of a node lifecycle state machine.
type Phase string

// Creation phases.
const (
	PhaseCloningDrive      Phase = "CLONING_DRIVE"
	PhaseAwaitingUnmounted Phase = "AWAITING_UNMOUNTED"
	PhaseCreatingServer    Phase = "CREATING_SERVER"
	PhaseAwaitingRunning   Phase = "AWAITING_RUNNING"
	PhaseRollingBack       Phase = "ROLLING_BACK"
)

// Termination phases.
const (
	PhaseChecking        Phase = "CHECKING"
	PhaseStopping        Phase = "STOPPING"
	PhaseAwaitingStopped Phase = "AWAITING_STOPPED"
	PhaseDeleting        Phase = "DELETING"
)

// PhaseDone is the final phase of both machines.
const PhaseDone Phase = "DONE"

// Observer receives structured events during node operations.
type Observer interface {
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     Phase
	Node      string
	Resource  string
	Message   string
	Timestamp time.Time
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseEntered indicates a state machine entered a phase.
	EventPhaseEntered EventType = "phase.entered"
	// EventPhaseFailed indicates a phase ended with an error.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates a drive or server was created.
	EventResourceCreated EventType = "resource.created"
	// EventResourceDeleted indicates a drive or server was deleted.
	EventResourceDeleted EventType = "resource.deleted"
	// EventCleanupFailed indicates a best-effort cleanup step failed.
	EventCleanupFailed EventType = "cleanup.failed"

	// EventPoll records one observation of a polled resource.
	EventPoll EventType = "poll"
)

// LogObserver writes events to a logr.Logger. Polls are logged at V(1).
type LogObserver struct {
	Log logr.Logger
}

// Event implements Observer.
func (o LogObserver) Event(event Event) {
	kv := []any{"event", string(event.Type), "phase", string(event.Phase)}
	if event.Node != "" {
		kv = append(kv, "node", event.Node)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}

	switch event.Type {
	case EventPoll:
		o.Log.V(1).Info(event.Message, kv...)
	case EventPhaseFailed, EventCleanupFailed:
		o.Log.Error(nil, event.Message, kv...)
	default:
		o.Log.Info(event.Message, kv...)
	}
}

// Recorder is an Observer that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Event implements Observer.
func (r *Recorder) Event(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Phases returns the phases entered, in order.
func (r *Recorder) Phases() []Phase {
	var phases []Phase
	for _, e := range r.Events() {
		if e.Type == EventPhaseEntered {
			phases = append(phases, e.Phase)
		}
	}
	return phases
}

type nopObserver struct{}

func (nopObserver) Event(Event) {}

// multiObserver fans events out to several observers.
type multiObserver []Observer

func (m multiObserver) Event(event Event) {
	for _, o := range m {
		o.Event(event)
	}
}

// Observers combines observers; nil entries are skipped.
func Observers(obs ...Observer) Observer {
	var out multiObserver
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nopObserver{}
	case 1:
		return out[0]
	}
	return out
}

// Emit stamps and forwards an event.
func Emit(o Observer, event Event) {
	if o == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	o.Event(event)
}

// EnterPhase emits a phase transition.
func EnterPhase(o Observer, node string, phase Phase) {
	Emit(o, Event{Type: EventPhaseEntered, Phase: phase, Node: node, Message: fmt.Sprintf("entering %s", phase)})
}
