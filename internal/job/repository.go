package job

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/hiredeck/hiredeck/internal/api"

	"github.com/pkg/errors"
)

type Repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) *Repository {
	return &Repository{client}
}

func (r *Repository) JobsByQuery(search string, page, perPage int) ([]Job, api.Meta, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	var res struct {
		Data []Job `json:"data"`
		api.Meta
	}
	if err := r.client.Get("/jobs", q, &res); err != nil {
		return nil, api.Meta{}, errors.Wrap(err, "unable to list jobs")
	}
	return res.Data, res.Meta, nil
}

func (r *Repository) JobBySlug(slug string) (Job, error) {
	var j Job
	if err := r.client.Get(fmt.Sprintf("/jobs/slug/%s", url.PathEscape(slug)), nil, &j); err != nil {
		return Job{}, errors.Wrapf(err, "unable to get job %s", slug)
	}
	return j, nil
}
