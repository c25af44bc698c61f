package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hostel-portal-backend/config"
)

// Roles assigned to authenticated identities. Admins are recognized by
// the configured email allow-list, same as the portal login flow.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// ErrInvalidToken is returned for missing, expired, or tampered tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool { return id.Role == RoleAdmin }

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 bearer tokens.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	adminEmails map[string]struct{}
}

// NewManager builds a token manager from the auth configuration.
func NewManager(cfg config.AuthConfig) *Manager {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}
	return &Manager{
		secret:      []byte(cfg.JWTSecret),
		ttl:         cfg.TokenTTL,
		adminEmails: admins,
	}
}

// IssueToken signs a token for the given user.
func (m *Manager) IssueToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Verify parses a bearer token and returns the caller's identity. The
// role is derived from the admin allow-list, not from the token, so a
// list change takes effect without reissuing tokens.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role := RoleStudent
	if m.IsAdminEmail(c.Email) {
		role = RoleAdmin
	}
	return &Identity{UserID: userID, Email: c.Email, Role: role}, nil
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func (m *Manager) IsAdminEmail(email string) bool {
	_, ok := m.adminEmails[strings.ToLower(email)]
	return ok
}
