package company

import (
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

func (r *Repository) CompaniesByQuery(search string, page, perPage int) ([]Company, api.Meta, error) {
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
		Data []Company `json:"data"`
		api.Meta
	}
	if err := r.client.Get("/companies", q, &res); err != nil {
		return nil, api.Meta{}, errors.Wrap(err, "unable to list companies")
	}
	return res.Data, res.Meta, nil
}
