package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough"

func newTestManager(current, min int) *Manager {
	return NewManager(Config{
		Secret:         testSecret,
		TTL:            time.Hour,
		CurrentVersion: current,
		MinVersion:     min,
	})
}

func TestManager_Resolve(t *testing.T) {
	issuer := newTestManager(2, 2)

	userToken, err := issuer.Issue(Session{Type: TypeUser, UserID: "111", Username: "alice"})
	require.NoError(t, err)
	adminToken, err := issuer.Issue(Session{Type: TypeAdmin, UserID: "222", Username: "streamer"})
	require.NoError(t, err)

	oldToken, err := newTestManager(1, 1).Issue(Session{Type: TypeUser, UserID: "111", Username: "alice"})
	require.NoError(t, err)

	foreignToken, err := NewManager(Config{Secret: "another-secret", TTL: time.Hour, CurrentVersion: 2, MinVersion: 2}).
		Issue(Session{Type: TypeAdmin, UserID: "333"})
	require.NoError(t, err)

	expired := newTestManager(2, 2)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(Session{Type: TypeUser, UserID: "111"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		wantOutcome Outcome
		wantType    Type
	}{
		{name: "user", token: userToken, wantOutcome: Valid, wantType: TypeUser},
		{name: "admin", token: adminToken, wantOutcome: Valid, wantType: TypeAdmin},
		{name: "missing", token: "", wantOutcome: Missing},
		{name: "garbage", token: "not-a-token", wantOutcome: Invalid},
		{name: "wrong secret", token: foreignToken, wantOutcome: Invalid},
		{name: "expired", token: expiredToken, wantOutcome: Invalid},
		{name: "version below minimum", token: oldToken, wantOutcome: Stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := issuer.Resolve(tt.token)
			assert.Equal(t, tt.wantOutcome, outcome)
			if tt.wantOutcome != Valid {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, 2, got.Version)
		})
	}
}

func TestOutcome_ShouldClear(t *testing.T) {
	assert.False(t, Valid.ShouldClear())
	assert.False(t, Missing.ShouldClear())
	assert.True(t, Invalid.ShouldClear())
	assert.True(t, Stale.ShouldClear())
}

func TestManager_IssueRefusesPublic(t *testing.T) {
	_, err := newTestManager(1, 1).Issue(*Public())
	assert.Error(t, err)
}

func TestSession_Is(t *testing.T) {
	admin := &Session{Type: TypeAdmin}
	user := &Session{Type: TypeUser}

	assert.True(t, admin.Is(TypeAdmin))
	assert.False(t, admin.Is(TypeUser))
	assert.True(t, user.Is(TypeUser, TypeAdmin))
	assert.False(t, Public().Is(TypeUser, TypeAdmin))

	var none *Session
	assert.False(t, none.Is(TypePublic))
}

func TestManager_State(t *testing.T) {
	m := newTestManager(1, 1)

	state, err := m.SignState("admin")
	require.NoError(t, err)

	site, err := m.VerifyState(state)
	require.NoError(t, err)
	assert.Equal(t, "admin", site)

	_, err = m.VerifyState(state + "x")
	assert.ErrorIs(t, err, ErrInvalidState)

	sessionToken, err := m.Issue(Session{Type: TypeUser, UserID: "1"})
	require.NoError(t, err)
	_, err = m.VerifyState(sessionToken)
	assert.ErrorIs(t, err, ErrInvalidState, "a session token is not a state token")

	_, outcome := m.Resolve(state)
	assert.Equal(t, Invalid, outcome, "a state token is not a session")
}
