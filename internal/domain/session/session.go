package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Type string

const (
	TypePublic Type = "public"
	TypeUser   Type = "user"
	TypeAdmin  Type = "admin"
)

// Session is the decoded identity of a request. It lives only in the signed
// token.
type Session struct {
	Type     Type   `json:"type"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Version  int    `json:"version"`
}

// Public is the session of an anonymous visitor.
func Public() *Session {
	return &Session{Type: TypePublic}
}

// Is compares the session's discriminant. There is no hierarchy: an admin
// session does not satisfy Is(TypeUser).
func (s *Session) Is(types ...Type) bool {
	if s == nil {
		return false
	}
	for _, t := range types {
		if s.Type == t {
			return true
		}
	}
	return false
}

// Outcome describes what Resolve made of a token.
type Outcome int

const (
	Valid Outcome = iota
	Missing
	Invalid
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	case Stale:
		return "stale"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ShouldClear reports whether the caller must drop the stored token.
func (o Outcome) ShouldClear() bool {
	return o == Invalid || o == Stale
}

type Issuer interface {
	Issue(s Session) (string, error)
}

type Resolver interface {
	Resolve(token string) (*Session, Outcome)
}

type Config struct {
	Secret         string
	TTL            time.Duration
	CurrentVersion int
	MinVersion     int
}

type claims struct {
	Type     Type   `json:"type"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Version  int    `json:"version"`
	jwt.RegisteredClaims
}

type stateClaims struct {
	Site string `json:"site"`
	jwt.RegisteredClaims
}

const (
	stateTTL      = 10 * time.Minute
	stateSubject  = "oauth-state"
	sessionIssuer = "indigestion-cards"
)

var ErrInvalidState = errors.New("invalid oauth state")

// Manager signs and verifies HS256 session and state tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	cur    int
	min    int
	now    func() time.Time
}

var (
	_ Issuer   = &Manager{}
	_ Resolver = &Manager{}
)

func NewManager(cfg Config) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		cur:    cfg.CurrentVersion,
		min:    cfg.MinVersion,
		now:    time.Now,
	}
}

// Issue signs s. The version is always the current one.
func (m *Manager) Issue(s Session) (string, error) {
	if s.Type == TypePublic || s.Type == "" {
		return "", errors.New("refusing to issue a public session")
	}
	now := m.now()
	c := &claims{
		Type:     s.Type,
		UserID:   s.UserID,
		Username: s.Username,
		Version:  m.cur,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) Resolve(token string) (*Session, Outcome) {
	if token == "" {
		return nil, Missing
	}

	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, Invalid
	}

	switch c.Type {
	case TypeUser, TypeAdmin:
	default:
		return nil, Invalid
	}
	if c.Version < m.min {
		return nil, Stale
	}

	return &Session{
		Type:     c.Type,
		UserID:   c.UserID,
		Username: c.Username,
		Version:  c.Version,
	}, Valid
}

// SignState returns a short lived token naming the site the login started
// from.
func (m *Manager) SignState(site string) (string, error) {
	now := m.now()
	c := &stateClaims{
		Site: site,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   stateSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) VerifyState(token string) (string, error) {
	c := &stateClaims{}
	parsed, err := jwt.ParseWithClaims(token, c, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(stateSubject),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidState
	}
	return c.Site, nil
}

func (m *Manager) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return m.secret, nil
}
