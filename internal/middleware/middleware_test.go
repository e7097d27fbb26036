package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployerJWTRoundTrip(t *testing.T) {
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	key := []byte("test-jwt-signing-key")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/x/auth", nil)
	require.NoError(t, SaveEmployerJWT(w, r, store, key, "jo@initech.test"))

	r2 := httptest.NewRequest(http.MethodGet, "/manage/applications", nil)
	for _, c := range w.Result().Cookies() {
		r2.AddCookie(c)
	}
	claims, err := GetEmployerFromJWT(r2, store, key)
	require.NoError(t, err)
	assert.Equal(t, "jo@initech.test", claims.Email)
	assert.True(t, IsSignedOn(r2, store, key))

	_, err = GetEmployerFromJWT(r2, store, []byte("a-different-key"))
	assert.Error(t, err)
}

func TestEmployerAuthenticatedMiddlewareRedirectsAnonymousUsers(t *testing.T) {
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	key := []byte("test-jwt-signing-key")
	called := false
	h := EmployerAuthenticatedMiddleware(store, key, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/manage/applications", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
}

func TestMachineAuthenticatedMiddleware(t *testing.T) {
	called := false
	h := MachineAuthenticatedMiddleware("machine-token", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/applications.rss", nil)
	h(w, r)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r.Header.Set("Authorization", "Bearer machine-token")
	h(httptest.NewRecorder(), r)
	assert.True(t, called)
}
