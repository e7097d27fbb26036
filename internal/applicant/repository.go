package applicant

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hiredeck/hiredeck/internal/api"

	"github.com/pkg/errors"
)

// Repository reads and mutates applications through the upstream hiring
// API. It never touches storage directly; all authority lives upstream.
type Repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) *Repository {
	return &Repository{client}
}

// Filters is one page worth of list criteria. Search is forwarded upstream
// as-is; the controller additionally narrows the loaded page locally.
type Filters struct {
	Status    string
	Search    string
	JobID     int
	CompanyID int
	Page      int
	PerPage   int
}

func (f Filters) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.JobID > 0 {
		q.Set("job_id", strconv.Itoa(f.JobID))
	}
	if f.CompanyID > 0 {
		q.Set("company_id", strconv.Itoa(f.CompanyID))
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return q
}

func (r *Repository) ApplicationsByQuery(f Filters) ([]Application, api.Meta, error) {
	var page struct {
		Data []Application `json:"data"`
		api.Meta
	}
	if err := r.client.Get("/applications", f.values(), &page); err != nil {
		return nil, api.Meta{}, errors.Wrap(err, "unable to list applications")
	}
	return page.Data, page.Meta, nil
}

func (r *Repository) ApplicationByID(id int) (Application, error) {
	var app Application
	if err := r.client.Get(fmt.Sprintf("/applications/%d", id), nil, &app); err != nil {
		return Application{}, errors.Wrapf(err, "unable to get application %d", id)
	}
	return app, nil
}

// UpdateApplicationStatus performs exactly one transition. The status is
// checked against the vocabulary before any network call; the upstream API
// still validates the transition itself. The returned record carries the
// server-confirmed status and status_updated_at; when the upstream replies
// without a body the timestamp falls back to client time, best effort.
func (r *Repository) UpdateApplicationStatus(id int, newStatus, notes string) (Application, error) {
	if !IsValidStatus(newStatus) {
		return Application{}, fmt.Errorf("invalid status %q", newStatus)
	}
	body := struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}{newStatus, notes}
	var updated Application
	if err := r.client.Patch(fmt.Sprintf("/applications/%d", id), body, &updated); err != nil {
		return Application{}, errors.Wrapf(err, "unable to update status of application %d", id)
	}
	if updated.ID == 0 {
		updated.ID = id
		updated.Status = newStatus
		updated.StatusUpdatedAt = time.Now().UTC()
	}
	return updated, nil
}

// BulkUpdateStatus applies one status to many applications in a single
// batched request and returns the count the server reports, which may be
// lower than len(ids).
func (r *Repository) BulkUpdateStatus(ids []int, newStatus, notes string) (int, error) {
	if !IsValidStatus(newStatus) {
		return 0, fmt.Errorf("invalid status %q", newStatus)
	}
	body := struct {
		ApplicationIDs []int  `json:"application_ids"`
		Status         string `json:"status"`
		Notes          string `json:"notes,omitempty"`
	}{ids, newStatus, notes}
	var res struct {
		UpdatedCount int `json:"updated_count"`
	}
	if err := r.client.Post("/applications/bulk-status", body, &res); err != nil {
		return 0, errors.Wrap(err, "unable to bulk update application status")
	}
	return res.UpdatedCount, nil
}

func (r *Repository) StatusHistory(id int) ([]StatusHistoryEntry, error) {
	var entries []StatusHistoryEntry
	if err := r.client.Get(fmt.Sprintf("/applications/%d/status-history", id), nil, &entries); err != nil {
		return nil, errors.Wrapf(err, "unable to get status history of application %d", id)
	}
	return entries, nil
}
