package billing

import (
	"time"

	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/domain/scheduling"
	"github.com/meditrack/meditrack/internal/platform/ids"
)

// EmergencySurcharge multiplies the consultation fee of emergency bills.
const EmergencySurcharge = 1.5

// Factory builds unpersisted bills.
type Factory struct {
	ids     *ids.Generator
	taxRate float64
	now     func() time.Time
}

func NewFactory(gen *ids.Generator, taxRate float64) *Factory {
	return &Factory{ids: gen, taxRate: taxRate, now: time.Now}
}

// Build mints a BILL- id and fills in the base fee for t. The bill comes back
// with discount 0 and standard tax so it is never unpriced; the registry
// rule applied afterwards replaces those figures.
func (f *Factory) Build(appt *scheduling.Appointment, doctor *identity.Doctor, patient *identity.Patient, t BillType) *Bill {
	fee := doctor.ConsultationFee
	if t.Kind == KindEmergency {
		fee *= EmergencySurcharge
	}

	b := &Bill{
		ID:              f.ids.NextBillID(),
		AppointmentID:   appt.ID,
		PatientID:       patient.ID,
		PatientName:     patient.Name,
		DoctorName:      doctor.Name,
		ConsultationFee: fee,
		BillType:        t.Tag(),
		BilledAt:        f.now().UTC(),
	}
	b.TaxAmount = CalculateTax(fee, f.taxRate)
	b.TotalAmount = fee + b.TaxAmount
	return b
}
