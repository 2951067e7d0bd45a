package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformed = errors.New("token malformed")
	ErrSignature = errors.New("token signature invalid")
	ErrExpired   = errors.New("token expired")
)

// Payload is the set of identity claims embedded in every issued token.
type Payload struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type Claims struct {
	Payload Payload `json:"payload"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256-signed access and refresh tokens with a
// shared secret and distinct expiry windows.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Access signs payload into a short-lived access token.
func (m *Manager) Access(payload Payload) (string, error) {
	return m.sign(payload, m.accessTTL)
}

// Refresh signs payload into a longer-lived refresh token. The signing scheme
// is identical to Access; only the expiry window differs.
func (m *Manager) Refresh(payload Payload) (string, error) {
	return m.sign(payload, m.refreshTTL)
}

func (m *Manager) sign(payload Payload, ttl time.Duration) (string, error) {
	issuedAt := m.now()
	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the embedded claims. On any
// failure it returns a nil claims pointer and one of ErrMalformed, ErrExpired
// or ErrSignature so callers can branch with errors.Is instead of inspecting
// library error chains.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	switch {
	case err == nil && tok.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return nil, ErrSignature
	default:
		return nil, ErrMalformed
	}
}
