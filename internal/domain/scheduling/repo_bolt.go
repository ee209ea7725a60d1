package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/kvstore"
)

const AppointmentBucket = "appointments"

type appointmentRepoBolt struct {
	store *kvstore.Store
}

func NewAppointmentRepoBolt(store *kvstore.Store) AppointmentRepository {
	return &appointmentRepoBolt{store: store}
}

func (r *appointmentRepoBolt) Save(ctx context.Context, a *Appointment) error {
	return r.store.Put(ctx, AppointmentBucket, a.ID, a)
}

func (r *appointmentRepoBolt) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var a Appointment
	found, err := r.store.Get(ctx, AppointmentBucket, id, &a)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("Appointment", id)
	}
	return &a, nil
}

func (r *appointmentRepoBolt) List(ctx context.Context, f Filter) ([]*Appointment, error) {
	items, err := kvstore.List(ctx, r.store, AppointmentBucket, f.Match)
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

func (r *appointmentRepoBolt) Upcoming(ctx context.Context, now time.Time) ([]*Appointment, error) {
	items, err := kvstore.List(ctx, r.store, AppointmentBucket, func(a *Appointment) bool {
		return a.ScheduledAt.After(now) && a.Status != StatusCancelled
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.Before(items[j].ScheduledAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
