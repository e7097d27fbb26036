package applicant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hiredeck/hiredeck/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *Repository {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewRepository(api.NewClient(ts.URL, api.NewAuthContext("test-token")))
}

func TestApplicationsByQueryForwardsFilters(t *testing.T) {
	var gotQuery map[string]string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/applications", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{
			"data":[{"id":7,"status":"pending","candidate_name":"Ada Lovelace","key_strengths":"Go, SQL"}],
			"current_page":2,"last_page":5,"total":92
		}`))
	})

	applications, meta, err := repo.ApplicationsByQuery(Filters{
		Status:    StatusPending,
		Search:    "ada",
		JobID:     4,
		CompanyID: 9,
		Page:      2,
		PerPage:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"status":     "pending",
		"search":     "ada",
		"job_id":     "4",
		"company_id": "9",
		"page":       "2",
		"per_page":   "20",
	}, gotQuery)
	require.Len(t, applications, 1)
	assert.Equal(t, "Ada Lovelace", applications[0].CandidateName)
	assert.Equal(t, api.StringList{"Go", "SQL"}, applications[0].KeyStrengths)
	assert.Equal(t, api.Meta{CurrentPage: 2, LastPage: 5, Total: 92}, meta)
}

func TestApplicationsByQueryDefaultsToFirstPage(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":[],"current_page":1,"last_page":1,"total":0}`))
	})
	_, _, err := repo.ApplicationsByQuery(Filters{})
	require.NoError(t, err)
}

func TestUpdateApplicationStatusSendsPatch(t *testing.T) {
	var gotBody map[string]string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/applications/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":7,"status":"reviewing","status_updated_at":"2026-03-02T09:30:00Z"}`))
	})

	updated, err := repo.UpdateApplicationStatus(7, StatusReviewing, "starting review")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "reviewing", "notes": "starting review"}, gotBody)
	assert.Equal(t, StatusReviewing, updated.Status)
	assert.False(t, updated.StatusUpdatedAt.IsZero())
}

func TestUpdateApplicationStatusRejectsUnknownStatusBeforeNetwork(t *testing.T) {
	calls := 0
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	_, err := repo.UpdateApplicationStatus(7, "archived", "")
	require.Error(t, err)
	assert.Zero(t, calls, "vocabulary check must run before any request")
}

func TestUpdateApplicationStatusFallsBackOnEmptyReply(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	updated, err := repo.UpdateApplicationStatus(7, StatusReviewing, "")
	require.NoError(t, err)
	assert.Equal(t, 7, updated.ID)
	assert.Equal(t, StatusReviewing, updated.Status)
	assert.False(t, updated.StatusUpdatedAt.IsZero())
}

func TestBulkUpdateStatusSendsSingleBatchedRequest(t *testing.T) {
	calls := 0
	var gotBody struct {
		ApplicationIDs []int  `json:"application_ids"`
		Status         string `json:"status"`
		Notes          string `json:"notes"`
	}
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/applications/bulk-status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"updated_count":2}`))
	})

	count, err := repo.BulkUpdateStatus([]int{1, 2, 3}, StatusRejected, "position filled")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "the server's count is authoritative")
	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{1, 2, 3}, gotBody.ApplicationIDs)
	assert.Equal(t, StatusRejected, gotBody.Status)
	assert.Equal(t, "position filled", gotBody.Notes)
}

func TestStatusHistoryDecodesEntries(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/applications/7/status-history", r.URL.Path)
		w.Write([]byte(`[
			{"old_status":"pending","new_status":"reviewing","notes":"promising","changed_by":"jo@initech.test","created_at":"2026-03-01T10:00:00Z"},
			{"old_status":"","new_status":"pending","created_at":"2026-02-27T08:00:00Z"}
		]`))
	})
	entries, err := repo.StatusHistory(7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusReviewing, entries[0].NewStatus)
	assert.Equal(t, "promising", entries[0].Notes)
}
