// Package identity signs operators in against the Firebase identity toolkit
// REST API and refreshes their ID tokens.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAuthURL  = "https://identitytoolkit.googleapis.com/v1"
	DefaultTokenURL = "https://securetoken.googleapis.com/v1"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account disabled")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrRefreshRejected    = errors.New("refresh token rejected")
)

// Token is a signed-in identity: the short-lived ID token sent to the backend
// and the refresh token used to renew it.
type Token struct {
	IDToken      string
	RefreshToken string
	Expiry       time.Time
	UID          string
	Email        string
}

// ExpiresWithin reports whether the ID token is expired or will be within d.
func (t Token) ExpiresWithin(now time.Time, d time.Duration) bool {
	return !now.Add(d).Before(t.Expiry)
}

type Config struct {
	APIKey   string
	AuthURL  string
	TokenURL string
	Timeout  time.Duration
}

type Client struct {
	apiKey   string
	authURL  string
	tokenURL string
	http     *http.Client
	now      func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		authURL:  strings.TrimSuffix(cfg.AuthURL, "/"),
		tokenURL: strings.TrimSuffix(cfg.TokenURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		now:      time.Now,
	}
}

// SignIn exchanges an email and password for a token.
func (c *Client) SignIn(ctx context.Context, email, password string) (Token, error) {
	payload, err := json.Marshal(map[string]any{
		"email":             strings.TrimSpace(email),
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return Token{}, err
	}
	endpoint := c.authURL + "/accounts:signInWithPassword?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Token{}, fmt.Errorf("create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := c.do(req, &out); err != nil {
		return Token{}, err
	}
	return Token{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		Expiry:       c.expiry(out.ExpiresIn),
		UID:          out.LocalID,
		Email:        out.Email,
	}, nil
}

// Refresh trades a refresh token for a new ID token. The returned refresh
// token may differ from the one passed in.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Token, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	endpoint := c.tokenURL + "/token?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
		UserID       string `json:"user_id"`
	}
	if err := c.do(req, &out); err != nil {
		return Token{}, err
	}
	if out.RefreshToken == "" {
		out.RefreshToken = refreshToken
	}
	return Token{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		Expiry:       c.expiry(out.ExpiresIn),
		UID:          out.UserID,
	}, nil
}

func (c *Client) expiry(expiresIn string) time.Time {
	secs, err := strconv.Atoi(expiresIn)
	if err != nil || secs <= 0 {
		secs = 3600
	}
	return c.now().Add(time.Duration(secs) * time.Second)
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read identity response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return providerError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode identity response: %w", err)
	}
	return nil
}

// providerError maps the provider's error codes onto package errors. Codes
// look like "INVALID_PASSWORD" or "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
func providerError(status int, body []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	code, _, _ := strings.Cut(payload.Error.Message, " ")

	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "MISSING_PASSWORD":
		return ErrInvalidCredentials
	case "USER_DISABLED":
		return ErrUserDisabled
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	case "TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "USER_NOT_FOUND", "INVALID_GRANT_TYPE", "MISSING_REFRESH_TOKEN":
		return fmt.Errorf("%w: %s", ErrRefreshRejected, code)
	}
	if payload.Error.Message != "" {
		return fmt.Errorf("identity provider %d: %s", status, payload.Error.Message)
	}
	return fmt.Errorf("identity provider responded %d", status)
}
