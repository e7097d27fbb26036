package candidate

import (
	"net/http"
	"strings"

	"github.com/hiredeck/hiredeck/internal/api"
	"github.com/hiredeck/hiredeck/internal/server"

	"github.com/microcosm-cc/bluemonday"
)

func ProfilePageHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		data := map[string]interface{}{}
		if svr.IsEmail(email) {
			profile, err := repo.ProfileByEmail(email)
			switch {
			case err == nil:
				data["Profile"] = profile
			case api.IsNotFound(err):
				data["Email"] = email
			default:
				svr.Log(err, "unable to load candidate profile")
				data["LoadError"] = true
			}
		}
		svr.Render(w, r, http.StatusOK, "profile.html", data)
	}
}

// SaveProfileHandler creates or updates a candidate profile from the form.
func SaveProfileHandler(svr server.Server, repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		email := strings.TrimSpace(r.FormValue("email"))
		if name == "" || !svr.IsEmail(email) {
			svr.JSON(w, http.StatusBadRequest, "name and a valid email are required")
			return
		}
		policy := bluemonday.StrictPolicy()
		p := Profile{
			Name:        name,
			Email:       email,
			Location:    policy.Sanitize(r.FormValue("location")),
			CurrentRole: policy.Sanitize(r.FormValue("current_role")),
			Bio:         policy.Sanitize(r.FormValue("bio")),
			LinkedinURL: strings.TrimSpace(r.FormValue("linkedin_url")),
			Available:   r.FormValue("available") == "on",
		}
		if skills := strings.TrimSpace(r.FormValue("skills")); skills != "" {
			for _, s := range strings.Split(skills, ",") {
				if s = strings.TrimSpace(s); s != "" {
					p.Skills = append(p.Skills, policy.Sanitize(s))
				}
			}
		}
		existing, err := repo.ProfileByEmail(email)
		var saved Profile
		switch {
		case err == nil:
			p.ID = existing.ID
			p.Slug = existing.Slug
			saved, err = repo.UpdateProfile(p)
		case api.IsNotFound(err):
			saved, err = repo.SaveProfile(p)
		}
		if err != nil {
			svr.Log(err, "unable to save candidate profile")
			svr.Render(w, r, http.StatusBadGateway, "profile.html", map[string]interface{}{
				"Profile":   p,
				"SaveError": true,
			})
			return
		}
		svr.Render(w, r, http.StatusOK, "profile.html", map[string]interface{}{
			"Profile": saved,
			"Saved":   true,
		})
	}
}
