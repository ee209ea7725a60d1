// Package notification renders appointment lifecycle messages, hands them to
// a Sender and keeps an in-memory outbox that can be inspected over HTTP.
package notification

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

// ---------------------------------------------------------------------------
// Notification
// ---------------------------------------------------------------------------

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Notification is a single outbound message about an appointment.
type Notification struct {
	ID            string            `json:"id"`
	Event         string            `json:"event"`
	AppointmentID string            `json:"appointmentId,omitempty"`
	Recipient     string            `json:"recipient"`
	Subject       string            `json:"subject,omitempty"`
	Body          string            `json:"body"`
	TemplateID    string            `json:"templateId,omitempty"`
	TemplateData  map[string]string `json:"templateData,omitempty"`
	Status        Status            `json:"status"`
	Attempts      int               `json:"attempts"`
	CreatedAt     time.Time         `json:"createdAt"`
	SentAt        *time.Time        `json:"sentAt,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// ---------------------------------------------------------------------------
// Sender
// ---------------------------------------------------------------------------

// Sender delivers a rendered notification.
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}

// LogSender delivers notifications by writing them to a zerolog logger.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, n *Notification) error {
	s.logger.Info().
		Str("notification_id", n.ID).
		Str("event", n.Event).
		Str("appointment_id", n.AppointmentID).
		Str("recipient", n.Recipient).
		Str("subject", n.Subject).
		Msg(n.Body)
	return nil
}

// ---------------------------------------------------------------------------
// Template Engine
// ---------------------------------------------------------------------------

const (
	TemplateAppointmentCreated       = "appointment-created"
	TemplateAppointmentCancelled     = "appointment-cancelled"
	TemplateAppointmentStatusChanged = "appointment-status-changed"
)

// Template is a reusable message with {{key}} placeholders.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TemplateEngine manages templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the appointment templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      TemplateAppointmentCreated,
			Name:    "Appointment Created",
			Subject: "Appointment booked for {{patient_name}}",
			Body:    "Dear {{patient_name}}, your appointment with Dr. {{doctor_name}} on {{date_time}} is {{status}}. Reference: {{appointment_id}}.",
		},
		{
			ID:      TemplateAppointmentCancelled,
			Name:    "Appointment Cancelled",
			Subject: "Appointment {{appointment_id}} cancelled",
			Body:    "Dear {{patient_name}}, your appointment with Dr. {{doctor_name}} on {{date_time}} has been cancelled.",
		},
		{
			ID:      TemplateAppointmentStatusChanged,
			Name:    "Appointment Status Changed",
			Subject: "Appointment {{appointment_id}} is now {{status}}",
			Body:    "Dear {{patient_name}}, the status of your appointment with Dr. {{doctor_name}} on {{date_time}} changed to {{status}}.",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render performs {{key}} replacement. Placeholders without data are left
// as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// ---------------------------------------------------------------------------
// Manager
// ---------------------------------------------------------------------------

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Recipient     string
	AppointmentID string
	Status        Status
}

func (f Filter) match(n *Notification) bool {
	if f.Recipient != "" && n.Recipient != f.Recipient {
		return false
	}
	if f.AppointmentID != "" && n.AppointmentID != f.AppointmentID {
		return false
	}
	if f.Status != "" && n.Status != f.Status {
		return false
	}
	return true
}

// Manager sends notifications and keeps every attempt in its outbox.
type Manager struct {
	sender    Sender
	templates *TemplateEngine
	now       func() time.Time

	mu     sync.RWMutex
	outbox map[string]*Notification
	order  []string
}

func NewManager(sender Sender, tpl *TemplateEngine) *Manager {
	return &Manager{
		sender:    sender,
		templates: tpl,
		now:       time.Now,
		outbox:    make(map[string]*Notification),
	}
}

// Send assigns an id, delivers n and stores the outcome. The notification is
// stored even when delivery fails.
func (m *Manager) Send(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = m.now().UTC()
	n.Status = StatusPending

	err := m.deliver(ctx, n)

	m.mu.Lock()
	if _, exists := m.outbox[n.ID]; !exists {
		m.order = append(m.order, n.ID)
	}
	m.outbox[n.ID] = n.clone()
	m.mu.Unlock()

	return err
}

// clone copies n without sharing its template data or sent time.
func (n *Notification) clone() *Notification {
	cp := *n
	cp.TemplateData = maps.Clone(n.TemplateData)
	if n.SentAt != nil {
		at := *n.SentAt
		cp.SentAt = &at
	}
	return &cp
}

func (m *Manager) deliver(ctx context.Context, n *Notification) error {
	n.Attempts++
	if err := m.sender.Send(ctx, n); err != nil {
		n.Status = StatusFailed
		n.Error = err.Error()
		return err
	}
	sentAt := m.now().UTC()
	n.Status = StatusSent
	n.SentAt = &sentAt
	n.Error = ""
	return nil
}

// SendFromTemplate renders templateID with data and sends the result.
func (m *Manager) SendFromTemplate(ctx context.Context, templateID string, data map[string]string, n *Notification) error {
	subject, body, err := m.templates.Render(templateID, data)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	n.Subject = subject
	n.Body = body
	n.TemplateID = templateID
	n.TemplateData = maps.Clone(data)
	return m.Send(ctx, n)
}

// Get returns a copy of the stored notification.
func (m *Manager) Get(_ context.Context, id string) (*Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.outbox[id]
	if !ok {
		return nil, apperr.NotFound("Notification", id)
	}
	return n.clone(), nil
}

// List returns matching notifications, oldest first.
func (m *Manager) List(_ context.Context, f Filter) []*Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Notification{}
	for _, id := range m.order {
		n := m.outbox[id]
		if f.match(n) {
			out = append(out, n.clone())
		}
	}
	return out
}

// Retry re-delivers a failed notification. The entry reads as pending while
// the sender runs, so a concurrent retry of the same id is rejected.
func (m *Manager) Retry(ctx context.Context, id string) (*Notification, error) {
	m.mu.Lock()
	n, ok := m.outbox[id]
	if !ok {
		m.mu.Unlock()
		return nil, apperr.NotFound("Notification", id)
	}
	if n.Status != StatusFailed {
		m.mu.Unlock()
		return nil, apperr.InvalidData("status", fmt.Sprintf("notification %s is not in failed status (current: %s)", id, n.Status))
	}
	n.Status = StatusPending
	work := n.clone()
	m.mu.Unlock()

	err := m.deliver(ctx, work)

	m.mu.Lock()
	m.outbox[id] = work.clone()
	m.mu.Unlock()
	return work, err
}

// Stats holds outbox counts per status and per event.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
	ByEvent  map[string]int `json:"byEvent"`
}

func (m *Manager) Stats(_ context.Context) Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{
		Total:    len(m.outbox),
		ByStatus: make(map[Status]int),
		ByEvent:  make(map[string]int),
	}
	for _, n := range m.outbox {
		s.ByStatus[n.Status]++
		s.ByEvent[n.Event]++
	}
	return s
}
