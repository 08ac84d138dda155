package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
)

const (
	defaultAuthBaseURL = "https://id.twitch.tv/oauth2"
	defaultAPIBaseURL  = "https://api.twitch.tv/helix"
	// appTokenSkew renews the app token a little before Twitch expires it.
	appTokenSkew = time.Minute
)

// TwitchUser is a user from the Helix API
type TwitchUser struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TwitchService handles Twitch OAuth and user lookups
type TwitchService struct {
	config      *config.WebAppConfig
	httpClient  *http.Client
	authBaseURL string
	apiBaseURL  string

	mu          sync.Mutex
	appToken    string
	appTokenExp time.Time
	now         func() time.Time
}

var _ packs.Directory = &TwitchService{}

// NewTwitchService creates a new Twitch service
func NewTwitchService(cfg *config.WebAppConfig) *TwitchService {
	return &TwitchService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		authBaseURL: defaultAuthBaseURL,
		apiBaseURL:  defaultAPIBaseURL,
		now:         time.Now,
	}
}

// WithBaseURLs points the service at other OAuth and Helix hosts.
func (t *TwitchService) WithBaseURLs(authBaseURL, apiBaseURL string) *TwitchService {
	t.authBaseURL = strings.TrimRight(authBaseURL, "/")
	t.apiBaseURL = strings.TrimRight(apiBaseURL, "/")
	return t
}

// AuthURL generates the Twitch authorization URL
func (t *TwitchService) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", t.config.Config.Twitch.ClientID)
	params.Set("redirect_uri", t.config.Config.Twitch.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "")
	params.Set("state", state)

	return t.authBaseURL + "/authorize?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for a user access token
func (t *TwitchService) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", t.config.Config.Twitch.ClientID)
	data.Set("client_secret", t.config.Config.Twitch.ClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", t.config.Config.Twitch.RedirectURL)

	token, err := t.requestToken(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token.AccessToken, nil
}

// GetUser returns the user the access token belongs to
func (t *TwitchService) GetUser(ctx context.Context, accessToken string) (*TwitchUser, error) {
	users, err := t.getUsers(ctx, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("twitch returned no user for token")
	}
	return &users[0], nil
}

// LookupLogin resolves a Twitch login to its user id with the app token.
func (t *TwitchService) LookupLogin(ctx context.Context, login string) (string, string, error) {
	token, err := t.appAccessToken(ctx)
	if err != nil {
		return "", "", err
	}

	users, err := t.getUsers(ctx, token, url.Values{"login": {strings.ToLower(login)}})
	if err != nil {
		return "", "", err
	}
	if len(users) == 0 {
		return "", "", errs.NotFound("User %s not found on Twitch", login)
	}
	return users[0].ID, users[0].DisplayName, nil
}

func (t *TwitchService) appAccessToken(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.appToken != "" && t.now().Before(t.appTokenExp) {
		return t.appToken, nil
	}

	data := url.Values{}
	data.Set("client_id", t.config.Config.Twitch.ClientID)
	data.Set("client_secret", t.config.Config.Twitch.ClientSecret)
	data.Set("grant_type", "client_credentials")

	token, err := t.requestToken(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to get app access token: %w", err)
	}

	t.appToken = token.AccessToken
	t.appTokenExp = t.now().Add(time.Duration(token.ExpiresIn)*time.Second - appTokenSkew)
	slog.Debug("Twitch app token refreshed",
		slog.String("type", "http"),
		slog.Time("expires", t.appTokenExp))
	return t.appToken, nil
}

func (t *TwitchService) requestToken(ctx context.Context, data url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.authBaseURL+"/token",
		strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("twitch API error (%d): %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &token, nil
}

func (t *TwitchService) getUsers(ctx context.Context, accessToken string, query url.Values) ([]TwitchUser, error) {
	endpoint := t.apiBaseURL + "/users"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Client-Id", t.config.Config.Twitch.ClientID)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("twitch API error (%d): %s", resp.StatusCode, string(body))
	}

	var users struct {
		Data []TwitchUser `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return users.Data, nil
}
