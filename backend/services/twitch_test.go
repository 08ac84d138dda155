package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
)

func newTestWebConfig() *config.WebAppConfig {
	cfg := cardsite.DefaultConfig()
	cfg.Session.Secret = "test-secret-that-is-long-enough"
	cfg.Twitch.ClientID = "client"
	cfg.Twitch.ClientSecret = "secret"
	cfg.Twitch.RedirectURL = "http://localhost:8080/auth/callback"
	cfg.Twitch.StreamerUserID = "1000"
	return config.NewWebAppConfig(cfg)
}

type fakeTwitch struct {
	server      *httptest.Server
	tokenCalls  atomic.Int32
	lastGrant   atomic.Value
	knownLogins map[string]TwitchUser
}

func newFakeTwitch(t *testing.T) *fakeTwitch {
	f := &fakeTwitch{knownLogins: map[string]TwitchUser{
		"alice": {ID: "111", Login: "alice", DisplayName: "Alice"},
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		f.lastGrant.Store(r.PostForm.Get("grant_type"))
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "token-" + r.PostForm.Get("grant_type"), ExpiresIn: 3600})
	})
	mux.HandleFunc("/helix/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Client-Id") != "client" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var data []TwitchUser
		if login := r.URL.Query().Get("login"); login != "" {
			if u, ok := f.knownLogins[login]; ok {
				data = append(data, u)
			}
		} else if r.Header.Get("Authorization") == "Bearer user-token" {
			data = append(data, TwitchUser{ID: "1000", Login: "streamer", DisplayName: "Streamer"})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeTwitch) service() *TwitchService {
	return NewTwitchService(newTestWebConfig()).WithBaseURLs(f.server.URL+"/oauth2", f.server.URL+"/helix")
}

func TestTwitchService_AuthURL(t *testing.T) {
	svc := NewTwitchService(newTestWebConfig())

	u, err := url.Parse(svc.AuthURL("state-token"))
	require.NoError(t, err)
	assert.Equal(t, "id.twitch.tv", u.Host)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, "state-token", u.Query().Get("state"))
}

func TestTwitchService_ExchangeAndGetUser(t *testing.T) {
	f := newFakeTwitch(t)
	svc := f.service()

	token, err := svc.ExchangeCode(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "token-authorization_code", token)

	user, err := svc.GetUser(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "1000", user.ID)
	assert.Equal(t, "Streamer", user.DisplayName)
}

func TestTwitchService_LookupLoginCachesAppToken(t *testing.T) {
	f := newFakeTwitch(t)
	svc := f.service()
	ctx := context.Background()

	id, name, err := svc.LookupLogin(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "111", id)
	assert.Equal(t, "Alice", name)

	_, _, err = svc.LookupLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.tokenCalls.Load())
	assert.Equal(t, "client_credentials", f.lastGrant.Load())
}

func TestTwitchService_LookupUnknownLogin(t *testing.T) {
	f := newFakeTwitch(t)

	_, _, err := f.service().LookupLogin(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
