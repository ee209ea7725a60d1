package identity

import (
	"context"
	"sort"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/kvstore"
)

const (
	DoctorBucket  = "doctors"
	PatientBucket = "patients"
)

// -- Doctor Repository --

type doctorRepoBolt struct {
	store *kvstore.Store
}

func NewDoctorRepoBolt(store *kvstore.Store) DoctorRepository {
	return &doctorRepoBolt{store: store}
}

func (r *doctorRepoBolt) Create(ctx context.Context, d *Doctor) error {
	ok, err := r.store.Insert(ctx, DoctorBucket, d.ID, d)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidData("id", "Doctor already exists: "+d.ID)
	}
	return nil
}

func (r *doctorRepoBolt) GetByID(ctx context.Context, id string) (*Doctor, error) {
	var d Doctor
	found, err := r.store.Get(ctx, DoctorBucket, id, &d)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("Doctor", id)
	}
	return &d, nil
}

func (r *doctorRepoBolt) Delete(ctx context.Context, id string) error {
	deleted, err := r.store.Delete(ctx, DoctorBucket, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Doctor", id)
	}
	return nil
}

func (r *doctorRepoBolt) List(ctx context.Context) ([]*Doctor, error) {
	return r.filter(ctx, nil)
}

func (r *doctorRepoBolt) Search(ctx context.Context, keyword string) ([]*Doctor, error) {
	return r.filter(ctx, func(d *Doctor) bool { return d.matches(keyword) })
}

func (r *doctorRepoBolt) filter(ctx context.Context, keep func(*Doctor) bool) ([]*Doctor, error) {
	items, err := kvstore.List(ctx, r.store, DoctorBucket, keep)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// -- Patient Repository --

type patientRepoBolt struct {
	store *kvstore.Store
}

func NewPatientRepoBolt(store *kvstore.Store) PatientRepository {
	return &patientRepoBolt{store: store}
}

func (r *patientRepoBolt) Create(ctx context.Context, p *Patient) error {
	ok, err := r.store.Insert(ctx, PatientBucket, p.ID, p)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidData("id", "Patient already exists: "+p.ID)
	}
	return nil
}

func (r *patientRepoBolt) GetByID(ctx context.Context, id string) (*Patient, error) {
	var p Patient
	found, err := r.store.Get(ctx, PatientBucket, id, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("Patient", id)
	}
	return &p, nil
}

func (r *patientRepoBolt) Delete(ctx context.Context, id string) error {
	deleted, err := r.store.Delete(ctx, PatientBucket, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Patient", id)
	}
	return nil
}

func (r *patientRepoBolt) List(ctx context.Context) ([]*Patient, error) {
	return r.filter(ctx, nil)
}

func (r *patientRepoBolt) Search(ctx context.Context, keyword string) ([]*Patient, error) {
	return r.filter(ctx, func(p *Patient) bool { return p.matches(keyword) })
}

func (r *patientRepoBolt) filter(ctx context.Context, keep func(*Patient) bool) ([]*Patient, error) {
	items, err := kvstore.List(ctx, r.store, PatientBucket, keep)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
