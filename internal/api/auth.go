package api

import (
	"net/http"

	"sweetshop/internal/models"
	"sweetshop/internal/session"
)

// AuthService wraps the account endpoints and keeps the session manager in
// sync with successful logins.
type AuthService struct {
	client   *Client
	sessions *session.Manager
}

// NewAuthService creates the account service.
func NewAuthService(client *Client, sessions *session.Manager) *AuthService {
	return &AuthService{client: client, sessions: sessions}
}

// Register creates an account. It does not log the user in; the register
// endpoint returns no token.
func (s *AuthService) Register(username, email, password string) error {
	body := models.RegisterRequest{Username: username, Email: email, Password: password}
	return s.client.do(http.MethodPost, "/api/auth/register", nil, body, nil, "Registration failed")
}

// Login exchanges credentials for a token and persists the session.
// identity may be a username or an email.
func (s *AuthService) Login(identity, password string) (*models.LoginResponse, error) {
	body := models.LoginRequest{Username: identity, Password: password}
	var resp models.LoginResponse
	if err := s.client.do(http.MethodPost, "/api/auth/login", nil, body, &resp, "Login failed"); err != nil {
		return nil, err
	}
	if err := s.sessions.Login(resp.AccessToken, &resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout clears the persisted session.
func (s *AuthService) Logout() error {
	return s.sessions.Logout()
}

// CurrentUser returns the signed-in user, or nil.
func (s *AuthService) CurrentUser() *models.User {
	return s.sessions.User()
}
