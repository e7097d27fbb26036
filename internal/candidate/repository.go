package candidate

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/hiredeck/hiredeck/internal/api"

	"github.com/pkg/errors"
)

type Repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) *Repository {
	return &Repository{client}
}

func (r *Repository) ProfileByEmail(email string) (Profile, error) {
	q := url.Values{}
	q.Set("email", email)
	var profiles []Profile
	if err := r.client.Get("/candidates", q, &profiles); err != nil {
		return Profile{}, errors.Wrapf(err, "unable to get candidate profile for %s", email)
	}
	if len(profiles) == 0 {
		return Profile{}, &api.Error{StatusCode: http.StatusNotFound, Message: "candidate not found"}
	}
	return profiles[0], nil
}

func (r *Repository) SaveProfile(p Profile) (Profile, error) {
	if p.Slug == "" {
		p.Slug = MakeSlug(p.Name)
	}
	var saved Profile
	if err := r.client.Post("/candidates", p, &saved); err != nil {
		return Profile{}, errors.Wrap(err, "unable to create candidate profile")
	}
	return saved, nil
}

func (r *Repository) UpdateProfile(p Profile) (Profile, error) {
	if p.ID == 0 {
		return Profile{}, fmt.Errorf("candidate profile id is required")
	}
	var updated Profile
	if err := r.client.Put(fmt.Sprintf("/candidates/%d", p.ID), p, &updated); err != nil {
		return Profile{}, errors.Wrapf(err, "unable to update candidate profile %d", p.ID)
	}
	return updated, nil
}
