package employer

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/hiredeck/hiredeck/internal/middleware"
	"github.com/hiredeck/hiredeck/internal/server"
)

func GetAuthPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.IsSignedOn(r, svr.SessionStore, svr.GetJWTSigningKey()) {
			svr.Redirect(w, r, http.StatusFound, "/manage/applications")
			return
		}
		svr.Render(w, r, http.StatusOK, "auth.html", nil)
	}
}

// PostAuthPageHandler signs an employer on with the shared dashboard access
// key and stores a session-scoped token.
func PostAuthPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		email := strings.TrimSpace(r.FormValue("email"))
		accessKey := r.FormValue("access_key")
		if !svr.IsEmail(email) {
			svr.Render(w, r, http.StatusBadRequest, "auth.html", map[string]interface{}{
				"AuthError": "a valid email is required",
			})
			return
		}
		expected := svr.GetConfig().DashboardAccessKey
		if subtle.ConstantTimeCompare([]byte(accessKey), []byte(expected)) != 1 {
			svr.Render(w, r, http.StatusUnauthorized, "auth.html", map[string]interface{}{
				"AuthError": "invalid access key",
			})
			return
		}
		if err := middleware.SaveEmployerJWT(w, r, svr.SessionStore, svr.GetJWTSigningKey(), email); err != nil {
			svr.Log(err, "unable to persist employer session")
			svr.JSON(w, http.StatusInternalServerError, "could not sign you on")
			return
		}
		svr.Redirect(w, r, http.StatusFound, "/manage/applications")
	}
}

func SignOutHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err == nil {
			sess.Options.MaxAge = -1
			sess.Save(r, w)
		}
		svr.Redirect(w, r, http.StatusFound, "/")
	}
}
