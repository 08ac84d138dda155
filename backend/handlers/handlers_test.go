package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/middleware"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/services"
	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/catalog"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/trades"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/users"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

const testSecret = "test-secret-that-is-long-enough"

type fakeDB struct{ pingErr error }

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }
func (f *fakeDB) Stats() map[string]int32    { return map[string]int32{"total_conns": 1} }

type fakeTwitch struct{ user services.TwitchUser }

func (f *fakeTwitch) AuthURL(state string) string {
	return "https://twitch.test/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeTwitch) ExchangeCode(_ context.Context, code string) (string, error) {
	if code == "" {
		return "", errors.New("no code")
	}
	return "access-token", nil
}

func (f *fakeTwitch) GetUser(context.Context, string) (*services.TwitchUser, error) {
	u := f.user
	return &u, nil
}

type fakePacks struct {
	packs.Service
	openReq   packs.OpenRequest
	openErr   error
	converted int
}

func (f *fakePacks) OpenCard(_ context.Context, req packs.OpenRequest) (*models.CardInstance, error) {
	f.openReq = req
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &models.CardInstance{
		InstanceID: req.InstanceID,
		DesignID:   "design-1",
		RarityID:   "bronze",
		Opened:     true,
		Design:     &models.CardDesign{DesignID: "design-1", CardName: "Ghost"},
	}, nil
}

func (f *fakePacks) ConvertPreorders(context.Context, string) (int, error) {
	return f.converted, nil
}

type fakeCatalog struct {
	catalog.Service
	deleted   string
	deleteErr error
}

func (f *fakeCatalog) DeletePackType(_ context.Context, id string) error {
	f.deleted = id
	return f.deleteErr
}

type fakeUsers struct {
	users.Service
}

func (f *fakeUsers) UpsertFromLogin(_ context.Context, userID, username string) (*models.User, error) {
	return &models.User{UserID: userID, Username: username}, nil
}

type fakeTrades struct {
	trades.Service
}

type testApp struct {
	app     *fiber.App
	manager *session.Manager
	packs   *fakePacks
	catalog *fakeCatalog
	twitch  *fakeTwitch
	webCfg  *config.WebAppConfig
}

func newTestApp(t *testing.T, minVersion int) *testApp {
	t.Helper()

	cfg := cardsite.DefaultConfig()
	cfg.Session.Secret = testSecret
	cfg.Session.CurrentVersion = minVersion
	cfg.Session.MinVersion = minVersion
	cfg.Twitch.StreamerUserID = "1000"
	webCfg := config.NewWebAppConfig(cfg)

	manager := session.NewManager(session.Config{
		Secret:         testSecret,
		TTL:            time.Hour,
		CurrentVersion: minVersion,
		MinVersion:     minVersion,
	})

	ta := &testApp{
		manager: manager,
		packs:   &fakePacks{},
		catalog: &fakeCatalog{},
		twitch:  &fakeTwitch{user: services.TwitchUser{ID: "222", Login: "viewer", DisplayName: "Viewer"}},
		webCfg:  webCfg,
	}
	webApp := &WebApp{
		Config:   webCfg,
		DB:       &fakeDB{},
		Catalog:  ta.catalog,
		Packs:    ta.packs,
		Users:    &fakeUsers{},
		Trades:   &fakeTrades{},
		Twitch:   ta.twitch,
		Sessions: services.NewSessionService(webCfg, manager),
		Version:  "test",
	}

	ta.app = fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Register(ta.app, webApp)
	return ta
}

func (ta *testApp) token(t *testing.T, typ session.Type, userID string) string {
	t.Helper()
	token, err := ta.manager.Issue(session.Session{Type: typ, UserID: userID, Username: "name-" + userID})
	require.NoError(t, err)
	return token
}

func (ta *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func formRequest(method, target, token string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestHealthCheck(t *testing.T) {
	ta := newTestApp(t, 1)

	resp, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"healthy"`)
}

func TestOpenCard(t *testing.T) {
	tests := []struct {
		name       string
		sessType   session.Type
		openErr    error
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "admin is not a user", sessType: session.TypeAdmin, wantStatus: http.StatusUnauthorized},
		{name: "opened", sessType: session.TypeUser, wantStatus: http.StatusOK},
		{name: "already opened", sessType: session.TypeUser, openErr: errs.ErrAlreadyOpened, wantStatus: http.StatusBadRequest},
		{name: "not found", sessType: session.TypeUser, openErr: errs.NotFound("Card instance not found"), wantStatus: http.StatusNotFound},
		{name: "store failure", sessType: session.TypeUser, openErr: errs.Internal("boom", errors.New("db down")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, 1)
			ta.packs.openErr = tt.openErr

			var token string
			if tt.sessType != "" {
				token = ta.token(t, tt.sessType, "111")
			}
			resp, body := ta.do(t, formRequest(http.MethodPost, "/open-card", token, url.Values{"instanceId": {"inst-1"}}))
			assert.Equal(t, tt.wantStatus, resp.StatusCode, body)

			if tt.wantStatus == http.StatusOK {
				var card models.CardInstance
				require.NoError(t, json.Unmarshal([]byte(body), &card))
				assert.Equal(t, "inst-1", card.InstanceID)
				assert.Equal(t, "Ghost", card.Design.CardName)
				assert.Equal(t, "111", ta.packs.openReq.UserID)
			}
		})
	}
}

func TestOpenCard_MissingInstanceID(t *testing.T) {
	ta := newTestApp(t, 1)

	resp, body := ta.do(t, formRequest(http.MethodPost, "/open-card", ta.token(t, session.TypeUser, "111"), url.Values{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "instanceId is required")
}

func TestStaleSessionIsClearedAndRejected(t *testing.T) {
	old := session.NewManager(session.Config{Secret: testSecret, TTL: time.Hour, CurrentVersion: 1, MinVersion: 1})
	token, err := old.Issue(session.Session{Type: session.TypeUser, UserID: "111", Username: "alice"})
	require.NoError(t, err)

	ta := newTestApp(t, 2)
	resp, _ := ta.do(t, formRequest(http.MethodPost, "/open-card", token, url.Values{"instanceId": {"inst-1"}}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == services.SessionCookieName && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale session cookie should be cleared")
}

func TestAdminOpenCard(t *testing.T) {
	form := url.Values{"instanceId": {"inst-1"}, "designId": {"design-1"}, "packId": {"pack-1"}}

	t.Run("user session rejected", func(t *testing.T) {
		ta := newTestApp(t, 1)
		resp, _ := ta.do(t, formRequest(http.MethodPost, "/admin-api/card", ta.token(t, session.TypeUser, "111"), form))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("opened", func(t *testing.T) {
		ta := newTestApp(t, 1)
		resp, body := ta.do(t, formRequest(http.MethodPost, "/admin-api/card", ta.token(t, session.TypeAdmin, "1000"), form))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Card opened.", body)
		assert.Equal(t, packs.OpenRequest{InstanceID: "inst-1", DesignID: "design-1", PackID: "pack-1"}, ta.packs.openReq)
	})

	t.Run("already opened", func(t *testing.T) {
		ta := newTestApp(t, 1)
		ta.packs.openErr = errs.ErrAlreadyOpened
		resp, body := ta.do(t, formRequest(http.MethodPost, "/admin-api/card", ta.token(t, session.TypeAdmin, "1000"), form))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, errs.Message(errs.ErrAlreadyOpened), body)
	})

	t.Run("missing instance", func(t *testing.T) {
		ta := newTestApp(t, 1)
		resp, body := ta.do(t, formRequest(http.MethodPost, "/admin-api/card", ta.token(t, session.TypeAdmin, "1000"), url.Values{}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "instanceId is required", body)
	})
}

func TestDeletePackType(t *testing.T) {
	ta := newTestApp(t, 1)
	admin := ta.token(t, session.TypeAdmin, "1000")

	resp, body := ta.do(t, formRequest(http.MethodDelete, "/admin-api/pack-type", admin, url.Values{"packTypeId": {"starter"}}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pack type deleted.", body)
	assert.Equal(t, "starter", ta.catalog.deleted)

	ta.catalog.deleteErr = errs.Internal("failed to delete pack type", errors.New("db down"))
	resp, _ = ta.do(t, formRequest(http.MethodDelete, "/admin-api/pack-type", admin, url.Values{"packTypeId": {"starter"}}))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestConvertPreorders(t *testing.T) {
	ta := newTestApp(t, 1)
	ta.packs.converted = 3

	resp, body := ta.do(t, formRequest(http.MethodPost, "/admin-api/preorder/convert", ta.token(t, session.TypeAdmin, "1000"), url.Values{"packTypeId": {"starter"}}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"converted":3`)
}

func TestCurrentSession(t *testing.T) {
	ta := newTestApp(t, 1)

	resp, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"type":"public"`)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: ta.token(t, session.TypeUser, "111")})
	resp, body = ta.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"userId":"111"`)
}

func TestUnknownRoute(t *testing.T) {
	ta := newTestApp(t, 1)

	resp, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// login runs /auth/login and returns the state it set.
func login(t *testing.T, ta *testApp, site string) string {
	t.Helper()
	resp, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/auth/login?site="+site, nil))
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func callback(t *testing.T, ta *testApp, state string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state="+url.QueryEscape(state), nil)
	req.AddCookie(&http.Cookie{Name: services.StateCookieName, Value: state})
	resp, _ := ta.do(t, req)
	return resp
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == services.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

func TestOAuthFlow(t *testing.T) {
	t.Run("user login", func(t *testing.T) {
		ta := newTestApp(t, 1)
		resp := callback(t, ta, login(t, ta, config.SitePublic))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, ta.webCfg.Config.Web.PublicURL, resp.Header.Get("Location"))

		sess, outcome := ta.manager.Resolve(sessionCookie(resp))
		require.Equal(t, session.Valid, outcome)
		assert.Equal(t, session.TypeUser, sess.Type)
		assert.Equal(t, "222", sess.UserID)
		assert.Equal(t, "Viewer", sess.Username)
	})

	t.Run("admin site refuses non-admins", func(t *testing.T) {
		ta := newTestApp(t, 1)
		resp := callback(t, ta, login(t, ta, config.SiteAdmin))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), ta.webCfg.Config.Web.AdminURL+"?alert="))
		assert.Empty(t, sessionCookie(resp))
	})

	t.Run("streamer gets an admin session", func(t *testing.T) {
		ta := newTestApp(t, 1)
		ta.twitch.user = services.TwitchUser{ID: "1000", Login: "streamer", DisplayName: "Streamer"}
		resp := callback(t, ta, login(t, ta, config.SiteAdmin))

		assert.Equal(t, ta.webCfg.Config.Web.AdminURL, resp.Header.Get("Location"))
		sess, outcome := ta.manager.Resolve(sessionCookie(resp))
		require.Equal(t, session.Valid, outcome)
		assert.Equal(t, session.TypeAdmin, sess.Type)
	})

	t.Run("state mismatch", func(t *testing.T) {
		ta := newTestApp(t, 1)
		state := login(t, ta, config.SitePublic)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
		req.AddCookie(&http.Cookie{Name: services.StateCookieName, Value: state})
		resp, _ := ta.do(t, req)

		assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), ta.webCfg.Config.Web.PublicURL+"?alert="))
		assert.Empty(t, sessionCookie(resp))
	})

	t.Run("unknown site", func(t *testing.T) {
		ta := newTestApp(t, 1)
		resp, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/auth/login?site=elsewhere", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
