package applicant

import (
	"sort"
	"time"

	"github.com/hiredeck/hiredeck/internal/api"
)

const SearchTypeApplication = "application"

// Application is one candidate's submission to one job listing. The record
// is owned by the upstream API; this process never creates or deletes one.
type Application struct {
	ID              int       `json:"id"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"applied_at"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`

	CandidateID    int    `json:"candidate_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	CandidatePhone string `json:"candidate_phone"`

	JobID       int    `json:"job_id"`
	JobTitle    string `json:"job_title"`
	JobLocation string `json:"job_location"`
	CompanyID   int    `json:"company_id"`
	CompanyName string `json:"company_name"`

	CoverLetter       string         `json:"cover_letter"`
	MotivationLetter  string         `json:"motivation_letter"`
	ExpectedSalary    string         `json:"expected_salary"`
	AvailabilityDate  string         `json:"availability_date"`
	WillingToRelocate bool           `json:"willing_to_relocate"`
	KeyStrengths      api.StringList `json:"key_strengths"`
	Answers           []Answer       `json:"answers"`

	ResumeURL           string         `json:"resume_url"`
	CoverLetterURL      string         `json:"cover_letter_url"`
	AdditionalFilesURLs api.StringList `json:"additional_files_urls"`

	// derived for rendering, not part of the upstream payload
	TimeAgo string `json:"-"`
}

// Answer is a candidate's reply to a company-defined question.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// StatusHistoryEntry is an immutable audit record of one transition,
// constructed by the upstream API and only ever read here.
type StatusHistoryEntry struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Notes     string    `json:"notes"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// SortHistoryNewestFirst orders history for the timeline view.
func SortHistoryNewestFirst(entries []StatusHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// LatestHistoryEntry returns the most recent transition, whose notes back
// the current-status description block.
func LatestHistoryEntry(entries []StatusHistoryEntry) (StatusHistoryEntry, bool) {
	if len(entries) == 0 {
		return StatusHistoryEntry{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.CreatedAt.After(latest.CreatedAt) {
			latest = e
		}
	}
	return latest, true
}

// CountByStatus derives per-status counts from a loaded set. Counts are
// always recomputed from the set, never patched incrementally.
func CountByStatus(applications []Application) map[string]int {
	counts := make(map[string]int, len(Statuses()))
	for _, a := range applications {
		counts[a.Status]++
	}
	return counts
}
