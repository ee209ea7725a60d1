package identity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/kvstore"
)

func openTestStore(t *testing.T) *kvstore.Store {
	t.Helper()
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "identity.db"), DoctorBucket, PatientBucket)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDoctorRepoBolt_RoundTrip(t *testing.T) {
	repo := NewDoctorRepoBolt(openTestStore(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &Doctor{ID: "DOC-1002", Name: "Later", Specialization: ENT, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &Doctor{ID: "DOC-1001", Name: "Earlier", Specialization: Cardiology, ConsultationFee: 750.5, CreatedAt: base}))

	d, err := repo.GetByID(ctx, "DOC-1001")
	require.NoError(t, err)
	assert.Equal(t, "Earlier", d.Name)
	assert.Equal(t, 750.5, d.ConsultationFee)
	assert.Equal(t, Cardiology, d.Specialization)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "DOC-1001", all[0].ID)

	found, err := repo.Search(ctx, "ent")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "DOC-1002", found[0].ID)
}

func TestDoctorRepoBolt_DuplicateAndMissing(t *testing.T) {
	repo := NewDoctorRepoBolt(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Doctor{ID: "DOC-1001", Name: "A"}))
	err := repo.Create(ctx, &Doctor{ID: "DOC-1001", Name: "B"})
	assert.True(t, apperr.IsInvalidData(err))

	_, err = repo.GetByID(ctx, "DOC-9")
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(repo.Delete(ctx, "DOC-9")))
	assert.NoError(t, repo.Delete(ctx, "DOC-1001"))
}

func TestPatientRepoBolt_RoundTrip(t *testing.T) {
	repo := NewPatientRepoBolt(openTestStore(t))
	ctx := context.Background()

	p := &Patient{ID: "PAT-2001", Name: "Meera Iyer", BloodGroup: "O+", Allergies: []string{"penicillin"}}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "PAT-2001")
	require.NoError(t, err)
	assert.Equal(t, []string{"penicillin"}, got.Allergies)

	found, err := repo.Search(ctx, "o+")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, repo.Delete(ctx, "PAT-2001"))
	_, err = repo.GetByID(ctx, "PAT-2001")
	assert.True(t, apperr.IsNotFound(err))
}
