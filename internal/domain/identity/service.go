package identity

import (
	"context"
	"strings"
	"time"

	"github.com/meditrack/meditrack/internal/platform/ids"
	"github.com/meditrack/meditrack/internal/platform/validate"
)

type Service struct {
	doctors   DoctorRepository
	patients  PatientRepository
	ids       *ids.Generator
	validator *validate.Validator
	now       func() time.Time
}

func NewService(doctors DoctorRepository, patients PatientRepository, gen *ids.Generator) *Service {
	return &Service{
		doctors:   doctors,
		patients:  patients,
		ids:       gen,
		validator: validate.New(),
		now:       time.Now,
	}
}

// -- Doctor --

// CreateDoctor validates d, assigns the next DOC- id and stores it. No id
// is consumed when validation fails.
func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if sp, ok := ParseSpecialization(string(d.Specialization)); ok {
		d.Specialization = sp
	}
	d.Name = strings.TrimSpace(d.Name)
	if err := s.validator.Struct(d); err != nil {
		return err
	}
	d.ID = s.ids.NextDoctorID()
	d.CreatedAt = s.now().UTC()
	if d.AvailableSlots == nil {
		d.AvailableSlots = []string{}
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

// SearchDoctors matches keyword against name, id and specialization,
// ignoring case. A blank keyword lists everything.
func (s *Service) SearchDoctors(ctx context.Context, keyword string) ([]*Doctor, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.doctors.List(ctx)
	}
	return s.doctors.Search(ctx, keyword)
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := s.validator.Struct(p); err != nil {
		return err
	}
	p.ID = s.ids.NextPatientID()
	p.CreatedAt = s.now().UTC()
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// SearchPatients matches keyword against name, id and blood group,
// ignoring case. A blank keyword lists everything.
func (s *Service) SearchPatients(ctx context.Context, keyword string) ([]*Patient, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.patients.List(ctx)
	}
	return s.patients.Search(ctx, keyword)
}
