package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"PENDING", StatusPending, true},
		{"confirmed", StatusConfirmed, true},
		{" no_show ", StatusNoShow, true},
		{"Completed", StatusCompleted, true},
		{"RESCHEDULED", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestStatus_DisplayName(t *testing.T) {
	assert.Equal(t, "No Show", StatusNoShow.DisplayName())
	assert.Equal(t, "Cancelled", StatusCancelled.DisplayName())
	assert.Equal(t, "BOGUS", Status("BOGUS").DisplayName())
	assert.Len(t, Statuses, 5)
}

func TestNewAppointment_DefaultsToPending(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	a := NewAppointment("APT-3001", "DOC-1001", "PAT-2001", "Asha Rao", "Ravi Kumar", at, "follow-up")

	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, at, a.ScheduledAt)
	assert.Equal(t, "follow-up", a.Notes)
}

func TestFilter_Match(t *testing.T) {
	a := &Appointment{DoctorID: "DOC-1001", PatientID: "PAT-2001", Status: StatusConfirmed}

	assert.True(t, Filter{}.Match(a))
	assert.True(t, Filter{DoctorID: "DOC-1001", Status: StatusConfirmed}.Match(a))
	assert.False(t, Filter{PatientID: "PAT-2002"}.Match(a))
	assert.False(t, Filter{Status: StatusCancelled}.Match(a))
}
