package interview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func TestListByApplicationFiltersByApplicationID(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/interviews", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("job_application_id"))
		w.Write([]byte(`[
			{"id":1,"job_application_id":7,"interview_type":"phone","scheduled_at":"2026-03-10T14:00:00Z","status":"scheduled"},
			{"id":2,"job_application_id":7,"interview_type":"video","scheduled_at":"2026-03-12T10:00:00Z","meeting_link":"https://meet.example.com/x","status":"scheduled"}
		]`))
	})
	interviews, err := repo.ListByApplication(7)
	require.NoError(t, err)
	require.Len(t, interviews, 2)
	assert.Equal(t, TypeVideo, interviews[1].InterviewType)
}

func TestCreateValidatesBeforeAnyRequest(t *testing.T) {
	calls := 0
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	_, err := repo.Create(Interview{
		JobApplicationID: 7,
		InterviewType:    TypeVideo,
		ScheduledAt:      time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)
	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.Contains(t, verrs, "meeting_link")
	assert.Zero(t, calls, "invalid interviews never reach the network")
}

func TestCreatePostsInterview(t *testing.T) {
	var gotBody map[string]interface{}
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/interviews", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":42,"job_application_id":7,"interview_type":"phone","status":"scheduled"}`))
	})
	created, err := repo.Create(Interview{
		JobApplicationID: 7,
		InterviewType:    TypePhone,
		ScheduledAt:      time.Now().Add(24 * time.Hour),
		DurationMinutes:  30,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, float64(7), gotBody["job_application_id"])
	assert.Equal(t, "phone", gotBody["interview_type"])
}

func TestUpdateRequiresID(t *testing.T) {
	calls := 0
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	_, err := repo.Update(Interview{
		InterviewType: TypePhone,
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestUpdatePutsInterview(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/interviews/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"job_application_id":7,"interview_type":"phone","status":"rescheduled"}`))
	})
	updated, err := repo.Update(Interview{
		ID:               42,
		JobApplicationID: 7,
		InterviewType:    TypePhone,
		ScheduledAt:      time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, updated.Status)
}

func TestDeleteSendsDelete(t *testing.T) {
	var gotMethod, gotPath string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, repo.Delete(42))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/interviews/42", gotPath)
}
