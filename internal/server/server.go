package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"time"

	"github.com/hiredeck/hiredeck/internal/config"
	"github.com/hiredeck/hiredeck/internal/email"
	"github.com/hiredeck/hiredeck/internal/middleware"
	stdtemplate "github.com/hiredeck/hiredeck/internal/template"

	"github.com/allegro/bigcache/v3"
	raven "github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const cacheDefaultExpiration = 12 * time.Hour

// Server bundles the router, views, cache and outbound clients every
// handler needs. It is passed by value, the fields are pointers or small.
type Server struct {
	cfg          config.Config
	router       *mux.Router
	tmpl         *stdtemplate.Template
	emailClient  email.Client
	logger       zerolog.Logger
	bigCache     *bigcache.BigCache
	emailRe      *regexp.Regexp
	SessionStore *sessions.CookieStore
}

func NewServer(
	cfg config.Config,
	tmpl *stdtemplate.Template,
	emailClient email.Client,
	sessionStore *sessions.CookieStore,
	logger zerolog.Logger,
) (Server, error) {
	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			return Server{}, err
		}
	}
	bigCache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(cacheDefaultExpiration))
	if err != nil {
		return Server{}, err
	}
	return Server{
		cfg:          cfg,
		router:       mux.NewRouter(),
		tmpl:         tmpl,
		emailClient:  emailClient,
		logger:       logger,
		bigCache:     bigCache,
		emailRe:      regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+\/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`),
		SessionStore: sessionStore,
	}, nil
}

func (s Server) RegisterRoute(path string, handler http.HandlerFunc, methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) RegisterPathPrefix(path string, handler http.Handler, methods []string) {
	s.router.PathPrefix(path).Handler(handler).Methods(methods...)
}

// Render injects the site-wide fields and writes the view.
func (s Server) Render(w http.ResponseWriter, r *http.Request, status int, view string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["SiteName"] = s.cfg.SiteName
	data["SiteHost"] = s.cfg.SiteHost
	data["SupportEmail"] = s.cfg.SupportEmail
	data["IsSignedOn"] = middleware.IsSignedOn(r, s.SessionStore, s.cfg.JwtSigningKey)
	if err := s.tmpl.RenderToHTTPResponse(w, status, view, data); err != nil {
		s.Log(err, fmt.Sprintf("unable to render view %s", view))
		return err
	}
	return nil
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if msg, ok := data.(string); ok {
		data = map[string]string{"message": msg}
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("unable to encode json response")
	}
}

func (s Server) TEXT(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func (s Server) XML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func (s Server) MEDIA(w http.ResponseWriter, status int, media []byte, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "max-age=86400")
	w.WriteHeader(status)
	w.Write(media)
}

func (s Server) Redirect(w http.ResponseWriter, r *http.Request, status int, dst string) {
	http.Redirect(w, r, dst, status)
}

// Log reports the error to sentry and the structured log.
func (s Server) Log(err error, msg string) {
	s.logger.Error().Err(err).Msg(msg)
	raven.CaptureErrorAndWait(err, map[string]string{"message": msg})
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	s.logger.Info().Str("addr", addr).Str("env", s.cfg.Env).Msg("starting server")
	return http.ListenAndServe(
		addr,
		middleware.HTTPSMiddleware(
			middleware.HeadersMiddleware(
				middleware.LoggingMiddleware(s.router, s.logger),
				s.cfg.Env,
			),
			s.cfg.Env,
		),
	)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetEmail() email.Client {
	return s.emailClient
}

func (s Server) GetJWTSigningKey() []byte {
	return s.cfg.JwtSigningKey
}

func (s Server) GetLogger() zerolog.Logger {
	return s.logger
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	out, err := s.bigCache.Get(key)
	if err != nil {
		return nil, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	return s.bigCache.Set(key, val)
}

func (s Server) CacheDelete(key string) error {
	return s.bigCache.Delete(key)
}

func (s Server) MarkdownToHTML(s2 string) template.HTML {
	return s.tmpl.MarkdownToHTML(s2)
}

func (s Server) StringToHTML(s2 string) template.HTML {
	return s.tmpl.StringToHTML(s2)
}

func (s Server) IsEmail(val string) bool {
	return s.emailRe.MatchString(val)
}
