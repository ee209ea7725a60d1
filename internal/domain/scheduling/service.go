package scheduling

import (
	"context"
	"time"

	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/db"
	"github.com/meditrack/meditrack/internal/platform/ids"
)

// Directory resolves the doctors and patients an appointment refers to.
// identity.Service satisfies it.
type Directory interface {
	GetDoctor(ctx context.Context, id string) (*identity.Doctor, error)
	GetPatient(ctx context.Context, id string) (*identity.Patient, error)
}

// Lifecycle owns appointment state changes. Every transition runs in one
// transaction; observers are notified only after it commits.
//
// Transitions are deliberately unrestricted: cancel works from any state and
// UpdateStatus accepts any valid status from any state.
type Lifecycle struct {
	appointments AppointmentRepository
	directory    Directory
	tx           db.Transactor
	ids          *ids.Generator
	dispatcher   *Dispatcher
	now          func() time.Time
}

func NewLifecycle(appts AppointmentRepository, dir Directory, tx db.Transactor, gen *ids.Generator, dispatcher *Dispatcher) *Lifecycle {
	return &Lifecycle{
		appointments: appts,
		directory:    dir,
		tx:           tx,
		ids:          gen,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// Create books an appointment. The stored status is always CONFIRMED.
func (l *Lifecycle) Create(ctx context.Context, doctorID, patientID string, scheduledAt time.Time, notes string) (*Appointment, error) {
	var created Appointment
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		doctor, err := l.directory.GetDoctor(ctx, doctorID)
		if err != nil {
			return unresolved(err, "doctorId", "Doctor", doctorID)
		}
		patient, err := l.directory.GetPatient(ctx, patientID)
		if err != nil {
			return unresolved(err, "patientId", "Patient", patientID)
		}

		a := NewAppointment(l.ids.NextAppointmentID(), doctorID, patientID,
			doctor.Name, patient.Name, scheduledAt, notes)
		a.Status = StatusConfirmed
		a.CreatedAt = l.now().UTC()
		a.UpdatedAt = a.CreatedAt

		if err := l.appointments.Save(ctx, &a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.dispatcher.Dispatch(ctx, EventCreated, created)
	return &created, nil
}

// Cancel moves any appointment to CANCELLED.
func (l *Lifecycle) Cancel(ctx context.Context, id string) (*Appointment, error) {
	return l.transition(ctx, id, StatusCancelled, EventCancelled)
}

// UpdateStatus sets any valid status regardless of the current one.
func (l *Lifecycle) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, apperr.InvalidData("status", "Invalid appointment status: "+string(status))
	}
	return l.transition(ctx, id, status, EventStatusChanged)
}

func (l *Lifecycle) transition(ctx context.Context, id string, to Status, ev Event) (*Appointment, error) {
	var updated Appointment
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := l.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		a.Status = to
		a.UpdatedAt = l.now().UTC()
		if err := l.appointments.Save(ctx, a); err != nil {
			return err
		}
		updated = *a
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.dispatcher.Dispatch(ctx, ev, updated)
	return &updated, nil
}

// unresolved turns a missing reference into InvalidData on field.
func unresolved(err error, field, entity, id string) error {
	if apperr.IsNotFound(err) {
		return apperr.InvalidData(field, entity+" not found: "+id)
	}
	return err
}

// -- Read side --

func (l *Lifecycle) Get(ctx context.Context, id string) (*Appointment, error) {
	return l.appointments.GetByID(ctx, id)
}

func (l *Lifecycle) List(ctx context.Context, f Filter) ([]*Appointment, error) {
	return l.appointments.List(ctx, f)
}

// Upcoming lists non-cancelled appointments scheduled after now, earliest
// first.
func (l *Lifecycle) Upcoming(ctx context.Context) ([]*Appointment, error) {
	return l.appointments.Upcoming(ctx, l.now())
}

// Analytics counts appointments per doctor name and per status.
func (l *Lifecycle) Analytics(ctx context.Context) (*Analytics, error) {
	all, err := l.appointments.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	out := &Analytics{
		Total:       len(all),
		PerDoctor:   make(map[string]int),
		PerStatus:   make(map[Status]int),
		GeneratedAt: l.now().UTC(),
	}
	for _, a := range all {
		out.PerDoctor[a.DoctorName]++
		out.PerStatus[a.Status]++
	}
	return out, nil
}
