// Package session implements server-side sessions referenced by a signed
// cookie token. The token is an HS256 JWT whose jti keys a Redis record,
// so logout revokes the session regardless of the token's lifetime. The
// resolved Identity is an explicit value threaded into every operation;
// no global session state.
package session

import (
	"context"
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"zintasa/backend/config"
	"zintasa/backend/pkg/redis"
)

var (
	ErrTokenInvalid   = errors.New("session token invalid")
	ErrTokenExpired   = errors.New("session token expired")
	ErrSessionRevoked = errors.New("session revoked")
)

// Identity is the authenticated caller: who they are and what scope
// their role grants. Guests carry a room number, staff a department.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	RoomNumber  string `json:"room_number,omitempty"`
	Department  string `json:"department,omitempty"`
}

// Session is a resolved live session.
type Session struct {
	Identity
	JTI       string
	ExpiresAt time.Time
}

type claims struct {
	Identity
	jwtv5.RegisteredClaims
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	rdb        *redis.Client
	logger     *zap.Logger
}

// NewManager builds a session manager. A nil Redis client degrades to
// signature-only validation: tokens stay valid until expiry and logout
// cannot revoke them early. The degradation is logged at startup.
func NewManager(cfg *config.AuthConfig, rdb *redis.Client, logger *zap.Logger) *Manager {
	if rdb == nil {
		logger.Warn("session store degraded: redis unavailable, logout cannot revoke tokens early")
	}
	return &Manager{
		secret:     []byte(cfg.SessionSecret),
		ttl:        cfg.SessionTTL,
		cookieName: cfg.Cookie.Name,
		rdb:        rdb,
		logger:     logger,
	}
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string { return m.cookieName }

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a session for id and returns the signed cookie token.
func (m *Manager) Issue(ctx context.Context, id *Identity) (string, error) {
	now := time.Now()
	jti := uuid.New().String()
	c := claims{
		Identity: *id,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "zintasa",
		},
	}

	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", err
	}

	if m.rdb != nil {
		if err := m.rdb.CreateSession(ctx, jti, id.UserID, m.ttl); err != nil {
			return "", err
		}
	}

	return token, nil
}

// Resolve validates a cookie token and returns the live session. A token
// whose server-side record is gone resolves to ErrSessionRevoked.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	parsed, err := jwtv5.ParseWithClaims(token, &claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	if m.rdb != nil {
		alive, err := m.rdb.SessionExists(ctx, c.ID)
		if err != nil {
			// Redis hiccup: fall back to signature validity rather than
			// locking every caller out.
			m.logger.Warn("session lookup failed, accepting signed token", zap.Error(err))
		} else if !alive {
			return nil, ErrSessionRevoked
		}
	}

	return &Session{
		Identity:  c.Identity,
		JTI:       c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// Revoke destroys the server-side session record.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if m.rdb == nil {
		return nil
	}
	return m.rdb.DeleteSession(ctx, jti)
}
