package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/domain/scheduling"
)

// DateTimeLayout is how appointment times appear in messages (dd-MM-yyyy HH:mm).
const DateTimeLayout = "02-01-2006 15:04"

// LogNotifier writes one console-style line per lifecycle event.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ scheduling.Observer = (*LogNotifier)(nil)

func (n *LogNotifier) OnAppointmentCreated(_ context.Context, a scheduling.Appointment) error {
	n.emit(a, "created", fmt.Sprintf("[NOTIFICATION] New appointment created: %s with Dr. %s on %s",
		a.PatientName, a.DoctorName, a.ScheduledAt.Format(DateTimeLayout)))
	return nil
}

func (n *LogNotifier) OnAppointmentCancelled(_ context.Context, a scheduling.Appointment) error {
	n.emit(a, "cancelled", fmt.Sprintf("[NOTIFICATION] Appointment CANCELLED: %s with Dr. %s (ID: %s)",
		a.PatientName, a.DoctorName, a.ID))
	return nil
}

func (n *LogNotifier) OnAppointmentStatusChanged(_ context.Context, a scheduling.Appointment) error {
	n.emit(a, "status_changed", fmt.Sprintf("[NOTIFICATION] Appointment status changed to %s for %s (ID: %s)",
		a.Status, a.PatientName, a.ID))
	return nil
}

func (n *LogNotifier) emit(a scheduling.Appointment, event, msg string) {
	n.logger.Info().
		Str("event", event).
		Str("appointment_id", a.ID).
		Str("status", string(a.Status)).
		Msg(msg)
}

// TemplateNotifier renders the built-in appointment templates and sends the
// result through a Manager, addressed to the patient.
type TemplateNotifier struct {
	manager *Manager
}

func NewTemplateNotifier(m *Manager) *TemplateNotifier {
	return &TemplateNotifier{manager: m}
}

var _ scheduling.Observer = (*TemplateNotifier)(nil)

func (n *TemplateNotifier) OnAppointmentCreated(ctx context.Context, a scheduling.Appointment) error {
	return n.send(ctx, scheduling.EventCreated, TemplateAppointmentCreated, a)
}

func (n *TemplateNotifier) OnAppointmentCancelled(ctx context.Context, a scheduling.Appointment) error {
	return n.send(ctx, scheduling.EventCancelled, TemplateAppointmentCancelled, a)
}

func (n *TemplateNotifier) OnAppointmentStatusChanged(ctx context.Context, a scheduling.Appointment) error {
	return n.send(ctx, scheduling.EventStatusChanged, TemplateAppointmentStatusChanged, a)
}

func (n *TemplateNotifier) send(ctx context.Context, ev scheduling.Event, templateID string, a scheduling.Appointment) error {
	data := map[string]string{
		"appointment_id": a.ID,
		"patient_name":   a.PatientName,
		"doctor_name":    a.DoctorName,
		"date_time":      a.ScheduledAt.Format(DateTimeLayout),
		"status":         a.Status.DisplayName(),
	}
	return n.manager.SendFromTemplate(ctx, templateID, data, &Notification{
		Event:         string(ev),
		AppointmentID: a.ID,
		Recipient:     a.PatientID,
	})
}
