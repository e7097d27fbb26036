package job

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/api"
)

// Job is one public listing, read from the upstream hiring API.
type Job struct {
	ID                int            `json:"id"`
	Slug              string         `json:"slug"`
	Title             string         `json:"title"`
	CompanyID         int            `json:"company_id"`
	CompanyName       string         `json:"company_name"`
	Location          string         `json:"location"`
	JobType           string         `json:"job_type"`
	SalaryRange       string         `json:"salary_range"`
	Description       string         `json:"description"`
	Requirements      api.StringList `json:"requirements"`
	PostedAt          time.Time      `json:"posted_at"`
	ApplicationsCount int            `json:"applications_count"`

	TimeAgo string `json:"-"`
}
