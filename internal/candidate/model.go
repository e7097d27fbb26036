package candidate

import (
	"fmt"
	"time"

	"github.com/hiredeck/hiredeck/internal/api"

	"github.com/gosimple/slug"
)

// Profile is a candidate's public profile on the board, owned by the
// upstream hiring API.
type Profile struct {
	ID          int            `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Location    string         `json:"location"`
	CurrentRole string         `json:"current_role"`
	Bio         string         `json:"bio"`
	Skills      api.StringList `json:"skills"`
	LinkedinURL string         `json:"linkedin_url"`
	Available   bool           `json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// MakeSlug derives a unique URL slug from the candidate name.
func MakeSlug(name string) string {
	return slug.Make(fmt.Sprintf("%s %d", name, time.Now().UTC().Unix()))
}
