package applicant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortHistoryNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []StatusHistoryEntry{
		{NewStatus: StatusReviewing, CreatedAt: base},
		{NewStatus: StatusInterviewed, CreatedAt: base.Add(48 * time.Hour)},
		{NewStatus: StatusPending, CreatedAt: base.Add(-24 * time.Hour)},
	}
	SortHistoryNewestFirst(entries)
	assert.Equal(t, StatusInterviewed, entries[0].NewStatus)
	assert.Equal(t, StatusReviewing, entries[1].NewStatus)
	assert.Equal(t, StatusPending, entries[2].NewStatus)
}

func TestLatestHistoryEntryBacksCurrentStatusNotes(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []StatusHistoryEntry{
		{NewStatus: StatusReviewing, Notes: "looks promising", CreatedAt: base.Add(time.Hour)},
		{NewStatus: StatusPending, Notes: "", CreatedAt: base},
	}
	latest, ok := LatestHistoryEntry(entries)
	require.True(t, ok)
	assert.Equal(t, "looks promising", latest.Notes)

	_, ok = LatestHistoryEntry(nil)
	assert.False(t, ok)
}

func TestCountByStatusSumsToSetSize(t *testing.T) {
	applications := []Application{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: StatusPending},
		{ID: 3, Status: StatusReviewing},
		{ID: 4, Status: StatusHired},
	}
	counts := CountByStatus(applications)
	assert.Equal(t, 2, counts[StatusPending])
	assert.Equal(t, 1, counts[StatusReviewing])
	assert.Equal(t, 1, counts[StatusHired])
	assert.Zero(t, counts[StatusRejected])
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(applications), total)
}
