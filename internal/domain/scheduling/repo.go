package scheduling

import (
	"context"
	"time"
)

// AppointmentRepository persists appointments. GetByID returns apperr
// NotFound for unknown ids. Save inserts or replaces by id.
type AppointmentRepository interface {
	Save(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, f Filter) ([]*Appointment, error)
	// Upcoming lists appointments scheduled after now that are not
	// cancelled, earliest first.
	Upcoming(ctx context.Context, now time.Time) ([]*Appointment, error)
}
