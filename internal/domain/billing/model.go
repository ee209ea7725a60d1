package billing

import "time"

// Bill is a priced charge for one appointment. An appointment may have any
// number of bills.
type Bill struct {
	ID              string    `json:"id"`
	AppointmentID   string    `json:"appointmentId"`
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	DoctorName      string    `json:"doctorName"`
	ConsultationFee float64   `json:"consultationFee"`
	TaxAmount       float64   `json:"taxAmount"`
	Discount        float64   `json:"discount"`
	TotalAmount     float64   `json:"totalAmount"`
	BillType        string    `json:"billType"`
	BilledAt        time.Time `json:"billedAt"`
}

// Summary projects b without recomputing anything.
func (b *Bill) Summary() BillSummary {
	return BillSummary{
		BillID:          b.ID,
		AppointmentID:   b.AppointmentID,
		PatientID:       b.PatientID,
		PatientName:     b.PatientName,
		DoctorName:      b.DoctorName,
		ConsultationFee: b.ConsultationFee,
		TaxAmount:       b.TaxAmount,
		Discount:        b.Discount,
		TotalAmount:     b.TotalAmount,
		GeneratedAt:     b.BilledAt,
		Display:         "Bill #" + b.ID + " - " + b.PatientName + " | Total: $" + FormatAmount(b.TotalAmount),
	}
}

// BillSummary is a read-only view of a bill for reporting.
type BillSummary struct {
	BillID          string    `json:"billId"`
	AppointmentID   string    `json:"appointmentId"`
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	DoctorName      string    `json:"doctorName"`
	ConsultationFee float64   `json:"consultationFee"`
	TaxAmount       float64   `json:"taxAmount"`
	Discount        float64   `json:"discount"`
	TotalAmount     float64   `json:"totalAmount"`
	GeneratedAt     time.Time `json:"generatedAt"`
	Display         string    `json:"display"`
}

// Filter narrows ListBills. Empty fields match everything.
type Filter struct {
	PatientID     string
	AppointmentID string
}

func (f Filter) Match(b *Bill) bool {
	if f.PatientID != "" && b.PatientID != f.PatientID {
		return false
	}
	if f.AppointmentID != "" && b.AppointmentID != f.AppointmentID {
		return false
	}
	return true
}

// RevenueReport sums bill totals overall and per stored bill type.
type RevenueReport struct {
	TotalRevenue float64            `json:"totalRevenue"`
	BillCount    int                `json:"billCount"`
	ByBillType   map[string]float64 `json:"byBillType"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}
