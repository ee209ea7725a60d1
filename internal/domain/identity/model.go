package identity

import (
	"strings"
	"time"
)

// Specialization is a doctor's field of practice.
type Specialization string

const (
	Cardiology    Specialization = "CARDIOLOGY"
	Dermatology   Specialization = "DERMATOLOGY"
	Neurology     Specialization = "NEUROLOGY"
	Orthopedics   Specialization = "ORTHOPEDICS"
	Pediatrics    Specialization = "PEDIATRICS"
	General       Specialization = "GENERAL"
	ENT           Specialization = "ENT"
	Ophthalmology Specialization = "OPHTHALMOLOGY"
	Psychiatry    Specialization = "PSYCHIATRY"
	Gynecology    Specialization = "GYNECOLOGY"
)

var specializationInfo = map[Specialization][2]string{
	Cardiology:    {"Cardiology", "Heart and cardiovascular system"},
	Dermatology:   {"Dermatology", "Skin, hair, and nails"},
	Neurology:     {"Neurology", "Brain and nervous system"},
	Orthopedics:   {"Orthopedics", "Bones and joints"},
	Pediatrics:    {"Pediatrics", "Children's health"},
	General:       {"General Medicine", "General health and wellness"},
	ENT:           {"ENT", "Ear, Nose, and Throat"},
	Ophthalmology: {"Ophthalmology", "Eye care"},
	Psychiatry:    {"Psychiatry", "Mental health"},
	Gynecology:    {"Gynecology", "Women's health"},
}

// ParseSpecialization matches s case-insensitively against the known
// specializations.
func ParseSpecialization(s string) (Specialization, bool) {
	sp := Specialization(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := specializationInfo[sp]
	return sp, ok
}

func (s Specialization) Valid() bool {
	_, ok := specializationInfo[s]
	return ok
}

func (s Specialization) DisplayName() string {
	if info, ok := specializationInfo[s]; ok {
		return info[0]
	}
	return string(s)
}

func (s Specialization) Description() string {
	return specializationInfo[s][1]
}

// Doctor is a practitioner who can be booked and billed for.
type Doctor struct {
	ID                string         `json:"id"`
	Name              string         `json:"name" validate:"notblank"`
	Age               int            `json:"age" validate:"min=0,max=150"`
	Gender            string         `json:"gender,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	Email             string         `json:"email,omitempty" validate:"omitempty,email"`
	Specialization    Specialization `json:"specialization" validate:"required,oneof=CARDIOLOGY DERMATOLOGY NEUROLOGY ORTHOPEDICS PEDIATRICS GENERAL ENT OPHTHALMOLOGY PSYCHIATRY GYNECOLOGY"`
	ConsultationFee   float64        `json:"consultationFee" validate:"gte=0"`
	YearsOfExperience int            `json:"yearsOfExperience" validate:"gte=0"`
	AvailableSlots    []string       `json:"availableSlots"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// Patient is a person who books appointments and receives bills.
type Patient struct {
	ID             string    `json:"id"`
	Name           string    `json:"name" validate:"notblank"`
	Age            int       `json:"age" validate:"min=0,max=150"`
	Gender         string    `json:"gender,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty" validate:"omitempty,email"`
	BloodGroup     string    `json:"bloodGroup,omitempty"`
	Allergies      []string  `json:"allergies"`
	MedicalHistory []string  `json:"medicalHistory"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (d *Doctor) matches(keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(d.Name), k) ||
		strings.Contains(strings.ToLower(d.ID), k) ||
		strings.Contains(strings.ToLower(string(d.Specialization)), k)
}

func (p *Patient) matches(keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), k) ||
		strings.Contains(strings.ToLower(p.ID), k) ||
		strings.Contains(strings.ToLower(p.BloodGroup), k)
}
