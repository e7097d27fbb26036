package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	SessionName = "_hiredeck"
	sessionJWT  = "jwt"
)

// EmployerJWT identifies a signed-on employer for the lifetime of the
// session cookie.
type EmployerJWT struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

func HTTPSMiddleware(next http.Handler, env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env == "prod" && r.Header.Get("X-Forwarded-Proto") != "https" {
			target := "https://" + r.Host + r.URL.Path
			if len(r.URL.RawQuery) > 0 {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func HeadersMiddleware(next http.Handler, env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env == "prod" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// EmployerAuthenticatedMiddleware gates the dashboard behind a signed-on
// employer session.
func EmployerAuthenticatedMiddleware(sessionStore *sessions.CookieStore, jwtKey []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetEmployerFromJWT(r, sessionStore, jwtKey); err != nil {
			http.Redirect(w, r, "/auth", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// MachineAuthenticatedMiddleware gates machine endpoints behind a static
// bearer token.
func MachineAuthenticatedMiddleware(machineToken string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if machineToken == "" || token != machineToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func GetEmployerFromJWT(r *http.Request, sessionStore *sessions.CookieStore, jwtKey []byte) (*EmployerJWT, error) {
	sess, err := sessionStore.Get(r, SessionName)
	if err != nil {
		return nil, err
	}
	tokenStr, ok := sess.Values[sessionJWT].(string)
	if !ok {
		return nil, fmt.Errorf("no jwt stored in session")
	}
	token, err := jwt.ParseWithClaims(tokenStr, &EmployerJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*EmployerJWT)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("unable to validate jwt claims")
	}
	return claims, nil
}

func IsSignedOn(r *http.Request, sessionStore *sessions.CookieStore, jwtKey []byte) bool {
	_, err := GetEmployerFromJWT(r, sessionStore, jwtKey)
	return err == nil
}

// SaveEmployerJWT mints a 30 day token for the employer and stores it in
// the session cookie.
func SaveEmployerJWT(w http.ResponseWriter, r *http.Request, sessionStore *sessions.CookieStore, jwtKey []byte, email string) error {
	claims := EmployerJWT{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtKey)
	if err != nil {
		return err
	}
	sess, err := sessionStore.Get(r, SessionName)
	if err != nil {
		return err
	}
	sess.Values[sessionJWT] = signed
	return sess.Save(r, w)
}
