package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type Config struct {
	Port                string
	Env                 string // either prod or dev, disables https redirect and few other bits
	APIBaseURL          string // base URL of the upstream hiring API
	APIToken            string // opaque bearer token for the upstream hiring API
	MachineToken        string
	DashboardAccessKey  string // shared key employers use to sign in to the dashboard
	SessionKey          []byte
	JwtSigningKey       []byte
	EmailAPIKey         string
	EmailBaseURL        string
	AdminEmail          string
	SupportEmail        string // displayed on the site for support queries
	NoReplyEmail        string // used for transactional emails
	SentryDSN           string
	SiteName            string
	SiteHost            string
	ApplicationsPerPage int // how many applications are shown per dashboard page
	JobsPerPage         int // how many jobs are shown per page result
	CompaniesPerPage    int // how many companies are shown per page result
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL cannot be empty")
	}
	apiToken := os.Getenv("API_TOKEN")
	if apiToken == "" {
		return Config{}, fmt.Errorf("API_TOKEN cannot be empty")
	}
	machineToken := os.Getenv("MACHINE_TOKEN")
	if machineToken == "" {
		return Config{}, fmt.Errorf("MACHINE_TOKEN cannot be empty")
	}
	dashboardAccessKey := os.Getenv("DASHBOARD_ACCESS_KEY")
	if dashboardAccessKey == "" {
		return Config{}, fmt.Errorf("DASHBOARD_ACCESS_KEY cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKeyString := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKeyString == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	emailAPIKey := os.Getenv("EMAIL_API_KEY")
	if emailAPIKey == "" {
		return Config{}, fmt.Errorf("EMAIL_API_KEY cannot be empty")
	}
	emailBaseURL := os.Getenv("EMAIL_BASE_URL")
	if emailBaseURL == "" {
		emailBaseURL = "https://api.sendinblue.com"
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_EMAIL cannot be empty")
	}
	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		return Config{}, fmt.Errorf("SUPPORT_EMAIL cannot be empty")
	}
	noReplyEmail := os.Getenv("NO_REPLY_EMAIL")
	if noReplyEmail == "" {
		return Config{}, fmt.Errorf("NO_REPLY_EMAIL cannot be empty")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		return Config{}, fmt.Errorf("SITE_NAME cannot be empty")
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	env := os.Getenv("ENV")
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	applicationsPerPage, err := strconv.Atoi(os.Getenv("APPLICATIONS_PER_PAGE"))
	if err != nil {
		applicationsPerPage = 20
	}
	jobsPerPage, err := strconv.Atoi(os.Getenv("JOBS_PER_PAGE"))
	if err != nil {
		jobsPerPage = 10
	}
	companiesPerPage, err := strconv.Atoi(os.Getenv("COMPANIES_PER_PAGE"))
	if err != nil {
		companiesPerPage = 10
	}

	return Config{
		Port:                port,
		Env:                 env,
		APIBaseURL:          apiBaseURL,
		APIToken:            apiToken,
		MachineToken:        machineToken,
		DashboardAccessKey:  dashboardAccessKey,
		SessionKey:          sessionKeyBytes,
		JwtSigningKey:       jwtSigningKeyBytes,
		EmailAPIKey:         emailAPIKey,
		EmailBaseURL:        emailBaseURL,
		AdminEmail:          adminEmail,
		SupportEmail:        supportEmail,
		NoReplyEmail:        noReplyEmail,
		SentryDSN:           os.Getenv("SENTRY_DSN"),
		SiteName:            siteName,
		SiteHost:            siteHost,
		ApplicationsPerPage: applicationsPerPage,
		JobsPerPage:         jobsPerPage,
		CompaniesPerPage:    companiesPerPage,
	}, nil
}
