package interview

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/hiredeck/hiredeck/internal/api"

	"github.com/pkg/errors"
)

// Repository reads and mutates interviews through the upstream hiring API.
type Repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) *Repository {
	return &Repository{client}
}

func (r *Repository) ListByApplication(applicationID int) ([]Interview, error) {
	q := url.Values{}
	q.Set("job_application_id", strconv.Itoa(applicationID))
	var interviews []Interview
	if err := r.client.Get("/interviews", q, &interviews); err != nil {
		return nil, errors.Wrapf(err, "unable to list interviews for application %d", applicationID)
	}
	return interviews, nil
}

// Create validates the interview locally, then sends it upstream. A
// ValidationErrors return means no request was made.
func (r *Repository) Create(iv Interview) (Interview, error) {
	if err := Validate(iv); err != nil {
		return Interview{}, err
	}
	var created Interview
	if err := r.client.Post("/interviews", iv, &created); err != nil {
		return Interview{}, errors.Wrap(err, "unable to create interview")
	}
	return created, nil
}

// Update replaces an interview; the same local validation applies as on
// create.
func (r *Repository) Update(iv Interview) (Interview, error) {
	if iv.ID == 0 {
		return Interview{}, fmt.Errorf("interview id is required")
	}
	if err := Validate(iv); err != nil {
		return Interview{}, err
	}
	var updated Interview
	if err := r.client.Put(fmt.Sprintf("/interviews/%d", iv.ID), iv, &updated); err != nil {
		return Interview{}, errors.Wrapf(err, "unable to update interview %d", iv.ID)
	}
	return updated, nil
}

func (r *Repository) Delete(id int) error {
	if err := r.client.Delete(fmt.Sprintf("/interviews/%d", id)); err != nil {
		return errors.Wrapf(err, "unable to delete interview %d", id)
	}
	return nil
}
