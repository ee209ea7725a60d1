package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/domain/scheduling"
	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/db"
)

// AppointmentLookup resolves the appointment being billed.
// scheduling.Lifecycle satisfies it.
type AppointmentLookup interface {
	Get(ctx context.Context, id string) (*scheduling.Appointment, error)
}

// Directory resolves the doctor and patient an appointment refers to.
type Directory interface {
	GetDoctor(ctx context.Context, id string) (*identity.Doctor, error)
	GetPatient(ctx context.Context, id string) (*identity.Patient, error)
}

type Service struct {
	bills        BillRepository
	appointments AppointmentLookup
	directory    Directory
	tx           db.Transactor
	factory      *Factory
	registry     *Registry
	logger       zerolog.Logger
	now          func() time.Time
}

func NewService(bills BillRepository, appts AppointmentLookup, dir Directory, tx db.Transactor,
	factory *Factory, registry *Registry, logger zerolog.Logger) *Service {
	return &Service{
		bills:        bills,
		appointments: appts,
		directory:    dir,
		tx:           tx,
		factory:      factory,
		registry:     registry,
		logger:       logger,
		now:          time.Now,
	}
}

// GenerateBill prices and stores a bill for appointmentID in one
// transaction. billType is matched case-insensitively; anything
// unrecognised is billed as STANDARD. Nothing is stored on failure.
//
// Repeated calls for one appointment create separate bills.
func (s *Service) GenerateBill(ctx context.Context, appointmentID, billType string) (*Bill, error) {
	var bill *Bill
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		appt, err := s.appointments.Get(ctx, appointmentID)
		if err != nil {
			return err
		}
		doctor, err := s.directory.GetDoctor(ctx, appt.DoctorID)
		if err != nil {
			return unresolved(err, "doctorId", "Doctor", appt.DoctorID)
		}
		patient, err := s.directory.GetPatient(ctx, appt.PatientID)
		if err != nil {
			return unresolved(err, "patientId", "Patient", appt.PatientID)
		}

		t := ParseBillType(billType)
		if !t.Known() {
			s.logger.Warn().Str("bill_type", t.Raw).Str("appointment_id", appointmentID).
				Msg("unknown bill type, pricing as STANDARD")
		}
		b := s.factory.Build(appt, doctor, patient, t)
		s.registry.ResolveTag(billType)(b)

		if err := s.bills.Create(ctx, b); err != nil {
			return err
		}
		bill = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("bill_id", bill.ID).
		Str("appointment_id", bill.AppointmentID).
		Str("bill_type", bill.BillType).
		Str("total", FormatAmount(bill.TotalAmount)).
		Msg("bill generated")
	return bill, nil
}

func unresolved(err error, field, entity, id string) error {
	if apperr.IsNotFound(err) {
		return apperr.InvalidData(field, entity+" not found: "+id)
	}
	return err
}

func (s *Service) GetBill(ctx context.Context, id string) (*Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *Service) ListBills(ctx context.Context, f Filter) ([]*Bill, error) {
	return s.bills.List(ctx, f)
}

// GetBillSummary projects the stored bill. Numbers are copied as stored.
func (s *Service) GetBillSummary(ctx context.Context, billID string) (*BillSummary, error) {
	b, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	sum := b.Summary()
	return &sum, nil
}

// RevenueReport totals every stored bill, overall and per bill type.
func (s *Service) RevenueReport(ctx context.Context) (*RevenueReport, error) {
	all, err := s.bills.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	r := &RevenueReport{
		BillCount:   len(all),
		ByBillType:  make(map[string]float64),
		GeneratedAt: s.now().UTC(),
	}
	for _, b := range all {
		r.TotalRevenue += b.TotalAmount
		r.ByBillType[b.BillType] += b.TotalAmount
	}
	return r, nil
}

// Rates reports the pricing rates in effect.
func (s *Service) Rates() Rates { return s.registry.Rates() }
