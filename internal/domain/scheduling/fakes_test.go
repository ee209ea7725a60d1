package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/ids"
)

// -- Fakes --

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	store map[string]Appointment
	saves int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{store: make(map[string]Appointment)}
}

func (f *fakeAppointmentRepo) Save(_ context.Context, a *Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[a.ID] = *a
	f.saves++
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.store[id]
	if !ok {
		return nil, apperr.NotFound("Appointment", id)
	}
	return &a, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, flt Filter) ([]*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Appointment{}
	for _, a := range f.store {
		a := a
		if flt.Match(&a) {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAppointmentRepo) Upcoming(ctx context.Context, now time.Time) ([]*Appointment, error) {
	all, _ := f.List(ctx, Filter{})
	out := []*Appointment{}
	for _, a := range all {
		if a.ScheduledAt.After(now) && a.Status != StatusCancelled {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

type fakeDirectory struct {
	doctors  map[string]*identity.Doctor
	patients map[string]*identity.Patient
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		doctors: map[string]*identity.Doctor{
			"DOC-1001": {ID: "DOC-1001", Name: "Asha Rao"},
			"DOC-1002": {ID: "DOC-1002", Name: "Vikram Sen"},
		},
		patients: map[string]*identity.Patient{
			"PAT-2001": {ID: "PAT-2001", Name: "Ravi Kumar"},
		},
	}
}

func (f *fakeDirectory) GetDoctor(_ context.Context, id string) (*identity.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperr.NotFound("Doctor", id)
	}
	return d, nil
}

func (f *fakeDirectory) GetPatient(_ context.Context, id string) (*identity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperr.NotFound("Patient", id)
	}
	return p, nil
}

// fakeTx runs fn directly. When failCommit is set the work is done but the
// commit is reported as failed.
type fakeTx struct {
	calls      int
	failCommit bool
}

var errCommit = errors.New("commit failed")

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	if f.failCommit {
		return errCommit
	}
	return nil
}

type call struct {
	event Event
	appt  Appointment
}

type recordingObserver struct {
	name  string
	log   *[]string
	calls []call
	err   error
	panic bool
}

func (r *recordingObserver) record(ev Event, a Appointment) error {
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
	r.calls = append(r.calls, call{event: ev, appt: a})
	if r.panic {
		panic("observer blew up")
	}
	return r.err
}

func (r *recordingObserver) OnAppointmentCreated(_ context.Context, a Appointment) error {
	return r.record(EventCreated, a)
}

func (r *recordingObserver) OnAppointmentCancelled(_ context.Context, a Appointment) error {
	return r.record(EventCancelled, a)
}

func (r *recordingObserver) OnAppointmentStatusChanged(_ context.Context, a Appointment) error {
	return r.record(EventStatusChanged, a)
}

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	lc   *Lifecycle
	repo *fakeAppointmentRepo
	tx   *fakeTx
	obs  *recordingObserver
	disp *Dispatcher
}

func newFixture() *fixture {
	repo := newFakeAppointmentRepo()
	tx := &fakeTx{}
	obs := &recordingObserver{name: "rec"}
	disp := NewDispatcher(testLogger(), obs)
	lc := NewLifecycle(repo, newFakeDirectory(), tx, ids.NewGenerator(), disp)
	lc.now = func() time.Time { return fixedNow }
	return &fixture{lc: lc, repo: repo, tx: tx, obs: obs, disp: disp}
}
