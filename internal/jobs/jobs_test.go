package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack/meditrack/internal/domain/billing"
)

type stubSource struct {
	report *billing.RevenueReport
	err    error
	calls  int
}

func (s *stubSource) RevenueReport(context.Context) (*billing.RevenueReport, error) {
	s.calls++
	return s.report, s.err
}

func TestRevenueReportJob_LogsTotals(t *testing.T) {
	var buf bytes.Buffer
	src := &stubSource{report: &billing.RevenueReport{
		TotalRevenue: 2183,
		BillCount:    2,
		ByBillType:   map[string]float64{"STANDARD": 1180, "INSURANCE": 1003},
	}}

	require.NoError(t, NewRevenueReportJob(src, zerolog.New(&buf)).Run(context.Background()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "revenue report", entry["message"])
	assert.Equal(t, "2183.00", entry["total_revenue"])
	assert.Equal(t, float64(2), entry["bills"])
	byType := entry["by_bill_type"].(map[string]any)
	assert.Equal(t, "1003.00", byType["INSURANCE"])
}

func TestRevenueReportJob_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("store offline")
	job := NewRevenueReportJob(&stubSource{err: boom}, zerolog.New(&buf))

	assert.ErrorIs(t, job.Run(context.Background()), boom)
	assert.Contains(t, buf.String(), "revenue report failed")
}

func TestScheduler_AddRevenueReport(t *testing.T) {
	job := NewRevenueReportJob(&stubSource{report: &billing.RevenueReport{}}, zerolog.New(io.Discard))

	s := NewScheduler(zerolog.New(io.Discard))
	ok, err := s.AddRevenueReport("@daily", job)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())

	ok, err = s.AddRevenueReport("", job)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	_, err = s.AddRevenueReport("not a schedule", job)
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(zerolog.New(io.Discard))
	s.Start()
	s.Stop(context.Background())
}
