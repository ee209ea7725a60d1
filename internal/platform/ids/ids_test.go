package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_FirstIDs(t *testing.T) {
	g := NewGenerator()

	assert.Equal(t, "DOC-1001", g.NextDoctorID())
	assert.Equal(t, "PAT-2001", g.NextPatientID())
	assert.Equal(t, "APT-3001", g.NextAppointmentID())
	assert.Equal(t, "BILL-4001", g.NextBillID())
	assert.Equal(t, "BILL-4002", g.NextBillID())
}

func TestGenerator_CountersAreIndependent(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 5; i++ {
		g.NextBillID()
	}

	assert.Equal(t, "DOC-1001", g.NextDoctorID())
	assert.Equal(t, "BILL-4006", g.NextBillID())
}

func TestGenerator_ConcurrentCallersGetUniqueIDs(t *testing.T) {
	g := NewGenerator()
	const workers, perWorker = 16, 250

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.NextAppointmentID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				assert.False(t, seen[id], "duplicate id %s", id)
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, "APT-7001", g.NextAppointmentID())
}

func TestGenerator_Observe(t *testing.T) {
	g := NewGenerator()

	assert.True(t, g.Observe("PAT-2050"))
	assert.Equal(t, "PAT-2051", g.NextPatientID())

	// never moves backwards
	assert.True(t, g.Observe("PAT-2010"))
	assert.Equal(t, "PAT-2052", g.NextPatientID())

	assert.False(t, g.Observe("XYZ-1"))
	assert.False(t, g.Observe("DOC-abc"))
	assert.Equal(t, "DOC-1001", g.NextDoctorID())
}
