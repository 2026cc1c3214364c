package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinytales/storefront/internal/config"
)

func newTestClient(baseURL string) *Client {
	return New(config.BackendConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, zerolog.Nop())
}

func TestPostSendsMultipartFieldsAndBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/verify-email", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "123456", r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"verified"}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL+"/api").Post(context.Background(), "/auth/verify-email", map[string]string{"code": "123456"}, "tok-1")
	require.NoError(t, err)
	assert.True(t, env.Status)
	assert.Equal(t, "verified", env.Message)
}

func TestGetWithoutTokenOmitsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":true,"data":{"name":"Jo","email":"jo@example.com"}}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).Get(context.Background(), "/auth/user-data", "")
	require.NoError(t, err)

	var user struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, env.DecodeData(&user))
	assert.Equal(t, "Jo", user.Name)
	assert.Equal(t, "jo@example.com", user.Email)
}

func TestNon2xxIsReturnedAsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":false,"status_code":422,"errors":{"email":["The email has already been taken."]}}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).Post(context.Background(), "/auth/register", map[string]string{"email": "a@b.com"}, "")
	require.NoError(t, err)
	assert.False(t, env.Status)
	assert.Equal(t, 422, env.StatusCode)
	assert.Equal(t, "The email has already been taken.", ErrorMessage(env, "fallback"))
}

func TestUnsetBaseURLFailsWithoutNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := newTestClient("")
	assert.False(t, client.Configured())

	_, err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"}, "")
	require.ErrorIs(t, err, ErrBaseURLUnset)

	_, err = client.Get(context.Background(), "/auth/user-data", "tok")
	require.ErrorIs(t, err, ErrBaseURLUnset)

	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestMalformedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Get(context.Background(), "/auth/user-data", "tok")
	require.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestTransportFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Post(context.Background(), "/auth/login", nil, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedEnvelope)
}

func TestCancelledContextAbortsCall(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Get(ctx, "/auth/user-data", "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
