package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop/internal/logger"
	"sweetshop/internal/models"
	"sweetshop/internal/session"
)

// memStore is an in-memory session.Store; it also serves as the client's
// TokenSource.
type memStore struct {
	token string
	user  *models.User
}

var _ session.Store = (*memStore)(nil)

func (f *memStore) Set(token string, user *models.User) error {
	f.token = token
	f.user = user
	return nil
}
func (f *memStore) Get() (string, *models.User) { return f.token, f.user }
func (f *memStore) Token() string               { return f.token }
func (f *memStore) Clear() error {
	f.token = ""
	f.user = nil
	return nil
}
func (f *memStore) Close() error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{})
}

func testClient(t *testing.T, handler http.Handler, token string) (*Client, *memStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := &memStore{token: token}
	return NewClient(server.URL, store, testLogger()), store
}

func TestClientAttachesBearerToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode([]models.Sweet{})
	})
	client, _ := testClient(t, handler, "tok-123")

	_, err := NewSweetService(client).List()
	require.NoError(t, err)
}

func TestClientOmitsAuthorizationWhenSignedOut(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Sweet{})
	})
	client, _ := testClient(t, handler, "")

	_, err := NewSweetService(client).List()
	require.NoError(t, err)
}

func TestClientPrefersServerDetail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	})
	client, store := testClient(t, handler, "")
	auth := NewAuthService(client, session.NewManager(store))

	err := auth.Register("ada", "ada@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestClientFallsBackToEndpointMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client, store := testClient(t, handler, "")
	auth := NewAuthService(client, session.NewManager(store))

	_, err := auth.Login("ada", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed", err.Error())
}

func TestLoginPersistsSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada", req.Username)
		assert.Equal(t, "pw", req.Password)
		json.NewEncoder(w).Encode(models.LoginResponse{
			AccessToken: "tok-abc",
			User:        models.User{ID: 1, Username: "ada", Email: "ada@example.com"},
		})
	})
	client, store := testClient(t, handler, "")
	sessions := session.NewManager(store)
	sessions.Hydrate()
	auth := NewAuthService(client, sessions)

	resp, err := auth.Login("ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.AccessToken)

	token, user := store.Get()
	assert.Equal(t, "tok-abc", token)
	require.NotNil(t, user)
	assert.Equal(t, "ada", user.Username)
	require.NotNil(t, auth.CurrentUser())
	assert.Equal(t, "ada", auth.CurrentUser().Username)
}

func TestLogoutClearsSession(t *testing.T) {
	client, store := testClient(t, http.NotFoundHandler(), "tok")
	store.user = &models.User{ID: 1, Username: "ada"}
	sessions := session.NewManager(store)
	sessions.Hydrate()
	auth := NewAuthService(client, sessions)

	require.NoError(t, auth.Logout())
	assert.Empty(t, store.Token())
	assert.Nil(t, auth.CurrentUser())
}
