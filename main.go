package main

import (
	"embed"
	"log"
	"net/http"
	"os"

	"github.com/hiredeck/hiredeck/internal/api"
	"github.com/hiredeck/hiredeck/internal/applicant"
	"github.com/hiredeck/hiredeck/internal/candidate"
	"github.com/hiredeck/hiredeck/internal/company"
	"github.com/hiredeck/hiredeck/internal/config"
	"github.com/hiredeck/hiredeck/internal/email"
	"github.com/hiredeck/hiredeck/internal/employer"
	"github.com/hiredeck/hiredeck/internal/interview"
	"github.com/hiredeck/hiredeck/internal/job"
	"github.com/hiredeck/hiredeck/internal/middleware"
	"github.com/hiredeck/hiredeck/internal/server"
	"github.com/hiredeck/hiredeck/internal/template"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

//go:embed static
var staticFS embed.FS

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	tmpl, err := template.NewTemplate(staticFS)
	if err != nil {
		log.Fatalf("unable to load templates: %v", err)
	}
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.EmailBaseURL, cfg.Env)
	if err != nil {
		log.Fatalf("unable to initialise email client: %v", err)
	}
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	svr, err := server.NewServer(cfg, tmpl, emailClient, sessionStore, logger)
	if err != nil {
		log.Fatalf("unable to initialise server: %v", err)
	}

	auth := api.NewAuthContext(cfg.APIToken)
	apiClient := api.NewClient(cfg.APIBaseURL, auth)

	applicantRepo := applicant.NewRepository(apiClient)
	interviewRepo := interview.NewRepository(apiClient)
	jobRepo := job.NewRepository(apiClient)
	companyRepo := company.NewRepository(apiClient)
	candidateRepo := candidate.NewRepository(apiClient)

	ctrl := applicant.NewController(applicantRepo)
	defer ctrl.Close()

	authd := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.EmployerAuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, next)
	}

	svr.RegisterRoute("/", job.JobsPageHandler(svr, jobRepo), []string{http.MethodGet})
	svr.RegisterRoute("/job/{slug}", job.JobPageHandler(svr, jobRepo), []string{http.MethodGet})
	svr.RegisterRoute("/companies", company.CompaniesPageHandler(svr, companyRepo), []string{http.MethodGet})
	svr.RegisterRoute("/profile", candidate.ProfilePageHandler(svr, candidateRepo), []string{http.MethodGet})
	svr.RegisterRoute("/profile", candidate.SaveProfileHandler(svr, candidateRepo), []string{http.MethodPost})

	svr.RegisterRoute("/auth", employer.GetAuthPageHandler(svr), []string{http.MethodGet})
	svr.RegisterRoute("/x/auth", employer.PostAuthPageHandler(svr), []string{http.MethodPost})
	svr.RegisterRoute("/x/signout", employer.SignOutHandler(svr), []string{http.MethodGet})

	svr.RegisterRoute("/manage/applications", authd(applicant.DashboardPageHandler(svr, ctrl)), []string{http.MethodGet})
	svr.RegisterRoute("/manage/applications/{id}", authd(applicant.ApplicationDetailPageHandler(svr, applicantRepo, interviewRepo)), []string{http.MethodGet})
	svr.RegisterRoute("/x/applications/status", authd(applicant.UpdateApplicationStatusHandler(svr, ctrl)), []string{http.MethodPost})
	svr.RegisterRoute("/x/applications/select", authd(applicant.SelectApplicationHandler(svr, ctrl)), []string{http.MethodPost})
	svr.RegisterRoute("/x/applications/bulk", authd(applicant.BulkUpdateStatusHandler(svr, ctrl)), []string{http.MethodPost})

	svr.RegisterRoute("/x/interviews", authd(interview.ListInterviewsHandler(svr, interviewRepo)), []string{http.MethodGet})
	svr.RegisterRoute("/x/interviews", authd(interview.CreateInterviewHandler(svr, interviewRepo, ctrl)), []string{http.MethodPost})
	svr.RegisterRoute("/x/interviews/update", authd(interview.UpdateInterviewHandler(svr, interviewRepo)), []string{http.MethodPost})
	svr.RegisterRoute("/x/interviews/delete", authd(interview.DeleteInterviewHandler(svr, interviewRepo)), []string{http.MethodPost})

	svr.RegisterRoute(
		"/applications.rss",
		middleware.MachineAuthenticatedMiddleware(cfg.MachineToken, applicant.RecentApplicationsFeedHandler(svr, applicantRepo)),
		[]string{http.MethodGet},
	)

	log.Fatal(svr.Run())
}
