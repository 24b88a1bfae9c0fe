// Package authapi is the HTTP client for the auth service, which verifies
// credentials and issues the session identity. The identity it returns is
// treated as opaque and already validated; there is no token refresh or
// expiry handling here.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned when the auth service rejects a login.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// ErrUnknownRole is returned when the auth service hands back an identity
// with a role this application does not recognize. Such sessions are never
// established.
var ErrUnknownRole = errors.New("auth service returned an unknown role")

// ErrLoginTaken is returned when registration fails because the login ID is
// already in use.
var ErrLoginTaken = errors.New("login ID already taken")

// Client talks to the auth service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates an auth service client. baseURL is the service root, e.g.
// "http://localhost:8080/api/auth".
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logger,
	}
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Login verifies credentials and returns the session identity with its role
// normalized to the canonical values.
func (c *Client) Login(ctx context.Context, loginID, password string) (models.Identity, error) {
	var ident models.Identity
	status, err := c.post(ctx, "/login", loginRequest{LoginID: loginID, Password: password}, &ident)
	if err != nil {
		return models.Identity{}, err
	}
	if status == http.StatusUnauthorized || status == http.StatusNotFound {
		return models.Identity{}, ErrInvalidCredentials
	}
	if status >= 400 {
		return models.Identity{}, fmt.Errorf("auth service returned status %d", status)
	}

	role := models.NormalizeRole(ident.Role)
	if role == "" {
		c.log.Warn("unknown role from auth service", zap.String("role", ident.Role))
		return models.Identity{}, ErrUnknownRole
	}
	ident.Role = role
	return ident, nil
}

// Register creates an account with the auth service. The new account is not
// logged in; the caller sends the user through the login flow afterwards.
func (c *Client) Register(ctx context.Context, fullName, loginID, password, role string) error {
	status, err := c.post(ctx, "/register", registerRequest{
		FullName: fullName,
		LoginID:  loginID,
		Password: password,
		Role:     role,
	}, &struct{}{})
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return ErrLoginTaken
	}
	if status >= 400 {
		return fmt.Errorf("auth service rejected registration (status %d)", status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 400 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode auth response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
