package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
)

func newManager(current, min int) *session.Manager {
	return session.NewManager(session.Config{
		Secret:         "test-secret-that-is-long-enough",
		TTL:            time.Hour,
		CurrentVersion: current,
		MinVersion:     min,
	})
}

func TestSessionService_Resolve(t *testing.T) {
	manager := newManager(2, 2)
	sessions := NewSessionService(newTestWebConfig(), manager)

	alice, err := manager.Issue(session.Session{Type: session.TypeUser, UserID: "111", Username: "alice"})
	require.NoError(t, err)
	bob, err := manager.Issue(session.Session{Type: session.TypeUser, UserID: "222", Username: "bob"})
	require.NoError(t, err)
	stale, err := newManager(1, 1).Issue(session.Session{Type: session.TypeUser, UserID: "333", Username: "carol"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		cookie      string
		bearer      string
		wantOutcome session.Outcome
		wantUser    string
		wantCleared bool
	}{
		{name: "nothing", wantOutcome: session.Missing},
		{name: "cookie", cookie: alice, wantOutcome: session.Valid, wantUser: "111"},
		{name: "bearer", bearer: alice, wantOutcome: session.Valid, wantUser: "111"},
		{name: "valid cookie wins over bearer", cookie: alice, bearer: bob, wantOutcome: session.Valid, wantUser: "111"},
		{name: "stale cookie falls back to bearer", cookie: stale, bearer: bob, wantOutcome: session.Valid, wantUser: "222", wantCleared: true},
		{name: "garbage cookie falls back to bearer", cookie: "garbage", bearer: bob, wantOutcome: session.Valid, wantUser: "222", wantCleared: true},
		{name: "stale cookie without bearer", cookie: stale, wantOutcome: session.Stale},
		{name: "both unusable reports the cookie", cookie: stale, bearer: "garbage", wantOutcome: session.Stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotSession *session.Session
				gotOutcome session.Outcome
			)
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				gotSession, gotOutcome = sessions.Resolve(c)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantOutcome, gotOutcome)
			if tt.wantUser != "" {
				require.NotNil(t, gotSession)
				assert.Equal(t, tt.wantUser, gotSession.UserID)
			}
			cleared := false
			for _, c := range resp.Cookies() {
				if c.Name == SessionCookieName && c.Value == "" {
					cleared = true
				}
			}
			assert.Equal(t, tt.wantCleared, cleared)
		})
	}
}
