package autorfp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageDurations(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	done := func(h int) *time.Time {
		at := base.Add(time.Duration(h) * time.Hour)
		return &at
	}

	stats := StageDurations([]StageSample{
		{Stage: "drafting", StartedAt: base, CompletedAt: done(2)},
		{Stage: "drafting", StartedAt: base, CompletedAt: done(6)},
		{Stage: "drafting", StartedAt: base},
		{Stage: "review", StartedAt: base, CompletedAt: done(1)},
	})

	require.Len(t, stats, 2)
	assert.Equal(t, "drafting", stats[0].Stage)
	assert.Equal(t, 2, stats[0].Completed)
	assert.Equal(t, 1, stats[0].InProgress)
	assert.InDelta(t, 4.0, stats[0].AverageHours, 0.001)
	assert.InDelta(t, 2.0, stats[0].MinHours, 0.001)
	assert.InDelta(t, 6.0, stats[0].MaxHours, 0.001)
	assert.Equal(t, "review", stats[1].Stage)
}

func TestSummarizeResponses(t *testing.T) {
	summary := SummarizeResponses(map[string]int64{
		"invited":  2,
		"accepted": 3,
		"declined": 1,
	}, []time.Duration{2 * time.Hour, 4 * time.Hour})

	assert.Equal(t, int64(6), summary.Total)
	assert.InDelta(t, 0.75, summary.AcceptanceRate, 0.0001)
	assert.InDelta(t, 3.0, summary.AverageResponseHours, 0.0001)

	empty := SummarizeResponses(nil, nil)
	assert.Zero(t, empty.AcceptanceRate)
	assert.Zero(t, empty.Total)
}
