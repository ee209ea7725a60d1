package scheduling

import (
	"strings"
	"time"
)

// Status is the current state of an appointment. Only the current value is
// stored; no transition history is kept.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// Statuses lists every valid status in declaration order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

var displayNames = map[Status]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCancelled: "Cancelled",
	StatusCompleted: "Completed",
	StatusNoShow:    "No Show",
}

// ParseStatus matches s case-insensitively against the five statuses.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := displayNames[st]
	return st, ok
}

func (s Status) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

func (s Status) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

type Appointment struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctorId"`
	PatientID   string    `json:"patientId"`
	DoctorName  string    `json:"doctorName"`
	PatientName string    `json:"patientName"`
	ScheduledAt time.Time `json:"dateTime"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewAppointment builds an appointment value in the PENDING state.
func NewAppointment(id, doctorID, patientID, doctorName, patientName string, scheduledAt time.Time, notes string) Appointment {
	return Appointment{
		ID:          id,
		DoctorID:    doctorID,
		PatientID:   patientID,
		DoctorName:  doctorName,
		PatientName: patientName,
		ScheduledAt: scheduledAt,
		Status:      StatusPending,
		Notes:       notes,
	}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	DoctorID  string
	PatientID string
	Status    Status
}

func (f Filter) Match(a *Appointment) bool {
	if f.DoctorID != "" && a.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

// Analytics holds appointment counts per doctor name and per status.
type Analytics struct {
	Total       int            `json:"total"`
	PerDoctor   map[string]int `json:"perDoctor"`
	PerStatus   map[Status]int `json:"perStatus"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
