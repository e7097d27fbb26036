package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hiredeck/hiredeck/internal/api"
	"github.com/hiredeck/hiredeck/internal/applicant"
	"github.com/hiredeck/hiredeck/internal/config"
	"github.com/hiredeck/hiredeck/internal/email"

	humanize "github.com/dustin/go-humanize"
)

// sends a plain digest of applications still waiting for review to the
// admin inbox, meant to run daily from a scheduler
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.EmailBaseURL, cfg.Env)
	if err != nil {
		log.Fatalf("unable to initialise email client: %v", err)
	}
	apiClient := api.NewClient(cfg.APIBaseURL, api.NewAuthContext(cfg.APIToken))
	repo := applicant.NewRepository(apiClient)

	pending, meta, err := repo.ApplicationsByQuery(applicant.Filters{
		Status:  applicant.StatusPending,
		Page:    1,
		PerPage: 50,
	})
	if err != nil {
		log.Fatalf("unable to load pending applications: %v", err)
	}
	if meta.Total == 0 {
		log.Println("no pending applications, skipping digest")
		return
	}

	var lines []string
	for _, a := range pending {
		lines = append(lines, fmt.Sprintf(
			"- %s applied for %s at %s (%s)",
			a.CandidateName, a.JobTitle, a.CompanyName, humanize.Time(a.AppliedAt),
		))
	}
	text := fmt.Sprintf(
		"%d applications are waiting for review.\n\n%s\n\nReview them at https://%s/manage/applications?status=pending",
		meta.Total, strings.Join(lines, "\n"), cfg.SiteHost,
	)
	err = emailClient.SendHTMLEmail(
		email.Address{Name: cfg.SiteName, Email: cfg.NoReplyEmail},
		email.Address{Email: cfg.AdminEmail},
		fmt.Sprintf("%d applications waiting for review", meta.Total),
		text,
		strings.ReplaceAll(text, "\n", "<br>"),
	)
	if err != nil {
		log.Fatalf("unable to send digest email: %v", err)
	}
	log.Printf("digest sent to %s with %d pending applications", cfg.AdminEmail, meta.Total)
}
