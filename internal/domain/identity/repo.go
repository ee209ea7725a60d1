package identity

import (
	"context"
)

// Repositories return apperr NotFound for unknown ids. List and Search are
// ordered by creation time, then id.

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Doctor, error)
	Search(ctx context.Context, keyword string) ([]*Doctor, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Patient, error)
	Search(ctx context.Context, keyword string) ([]*Patient, error)
}
