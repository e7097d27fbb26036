package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth, gotAccept, gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	auth := NewAuthContext("secret-token")
	client := NewClient(ts.URL, auth)
	var out struct{}
	require.NoError(t, client.Get("/applications", nil, &out))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientOmitsAuthorizationAfterClear(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	auth := NewAuthContext("secret-token")
	client := NewClient(ts.URL, auth)
	auth.Clear()
	var out struct{}
	require.NoError(t, client.Get("/applications", nil, &out))
	assert.Empty(t, gotAuth)
}

func TestClientErrorTaxonomy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"application not found"}`))
		case "/invalid":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"invalid status transition"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`boom`))
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL, NewAuthContext("t"))

	err := client.Get("/missing", nil, &struct{}{})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "application not found")

	err = client.Get("/invalid", nil, &struct{}{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "invalid status transition")

	err = client.Get("/boom", nil, &struct{}{})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestClientToleratesEmptyResponseBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, NewAuthContext("t"))
	var out struct {
		ID int `json:"id"`
	}
	require.NoError(t, client.Patch("/applications/1", map[string]string{"status": "reviewing"}, &out))
	assert.Zero(t, out.ID)
}

func TestMetaDecodesPaginationEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1},{"id":2}],"current_page":2,"last_page":7,"total":133}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, NewAuthContext("t"))
	var page struct {
		Data []struct {
			ID int `json:"id"`
		} `json:"data"`
		Meta
	}
	require.NoError(t, client.Get("/applications", nil, &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, Meta{CurrentPage: 2, LastPage: 7, Total: 133}, page.Meta)
}
