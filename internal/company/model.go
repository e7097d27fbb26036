package company

// Company is one hiring company, read from the upstream hiring API.
type Company struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	LogoURL     string `json:"logo_url"`
	JobsCount   int    `json:"jobs_count"`
}
