package scheduling

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Observer is told about every committed lifecycle transition. Each call
// receives a copy of the post-transition appointment.
type Observer interface {
	OnAppointmentCreated(ctx context.Context, a Appointment) error
	OnAppointmentCancelled(ctx context.Context, a Appointment) error
	OnAppointmentStatusChanged(ctx context.Context, a Appointment) error
}

// Event names the transition being dispatched.
type Event string

const (
	EventCreated       Event = "created"
	EventCancelled     Event = "cancelled"
	EventStatusChanged Event = "status_changed"
)

// Dispatcher fans a transition out to its observers synchronously, in
// registration order. A failing or panicking observer is logged and skipped;
// it never affects the transition or the observers after it.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
	logger    zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger, observers ...Observer) *Dispatcher {
	return &Dispatcher{
		observers: append([]Observer(nil), observers...),
		logger:    logger,
	}
}

func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.observers)
}

// Dispatch delivers ev to every observer and returns how many failed.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, a Appointment) int {
	d.mu.RLock()
	observers := append([]Observer(nil), d.observers...)
	d.mu.RUnlock()

	failed := 0
	for i, o := range observers {
		if err := d.deliver(ctx, o, ev, a); err != nil {
			failed++
			d.logger.Error().Err(err).
				Str("event", string(ev)).
				Int("observer", i).
				Str("observer_type", fmt.Sprintf("%T", o)).
				Str("appointment_id", a.ID).
				Msg("appointment observer failed")
		}
	}
	return failed
}

func (d *Dispatcher) deliver(ctx context.Context, o Observer, ev Event, a Appointment) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()

	switch ev {
	case EventCreated:
		return o.OnAppointmentCreated(ctx, a)
	case EventCancelled:
		return o.OnAppointmentCancelled(ctx, a)
	case EventStatusChanged:
		return o.OnAppointmentStatusChanged(ctx, a)
	default:
		return fmt.Errorf("unknown event %q", ev)
	}
}
