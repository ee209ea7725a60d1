// Package ids mints the prefixed sequential identifiers used for doctors,
// patients, appointments and bills.
package ids

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Kind selects one of the independent identifier sequences.
type Kind int

const (
	Doctor Kind = iota
	Patient
	Appointment
	Bill
)

const (
	DoctorPrefix      = "DOC-"
	PatientPrefix     = "PAT-"
	AppointmentPrefix = "APT-"
	BillPrefix        = "BILL-"
)

var prefixes = [...]string{
	Doctor:      DoctorPrefix,
	Patient:     PatientPrefix,
	Appointment: AppointmentPrefix,
	Bill:        BillPrefix,
}

var seeds = [...]int64{
	Doctor:      1000,
	Patient:     2000,
	Appointment: 3000,
	Bill:        4000,
}

// Generator holds one atomic counter per Kind. Counters never go backwards
// and are never reset while the process is alive. Safe for concurrent use.
type Generator struct {
	counters [4]atomic.Int64
}

// NewGenerator returns a Generator with every counter at its seed, so the
// first ids issued are DOC-1001, PAT-2001, APT-3001 and BILL-4001.
func NewGenerator() *Generator {
	g := &Generator{}
	for k, seed := range seeds {
		g.counters[k].Store(seed)
	}
	return g
}

// Next returns the next identifier for kind.
func (g *Generator) Next(kind Kind) string {
	n := g.counters[kind].Add(1)
	return prefixes[kind] + strconv.FormatInt(n, 10)
}

func (g *Generator) NextDoctorID() string      { return g.Next(Doctor) }
func (g *Generator) NextPatientID() string     { return g.Next(Patient) }
func (g *Generator) NextAppointmentID() string { return g.Next(Appointment) }
func (g *Generator) NextBillID() string        { return g.Next(Bill) }

// Observe advances the counter owning id so that it never issues id, or
// anything below it, again. Ids with an unknown prefix or a non-numeric
// suffix are ignored and reported as false.
func (g *Generator) Observe(id string) bool {
	for k, prefix := range prefixes {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(id, prefix), 10, 64)
		if err != nil {
			return false
		}
		c := &g.counters[k]
		for {
			cur := c.Load()
			if n <= cur || c.CompareAndSwap(cur, n) {
				return true
			}
		}
	}
	return false
}
