package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken indicates a token that failed signature or claim validation.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrAuthRequired indicates a request that carried no credentials.
	ErrAuthRequired = errors.New("authentication required")

	// ErrPermissionDenied indicates an authenticated request lacking the
	// required permission.
	ErrPermissionDenied = errors.New("permission denied")
)

// Claims carries the principal identity inside a signed token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HMAC-signed access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token service with the given signing secret and token
// lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given principal.
func (t *Tokens) Issue(p Principal) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: p.Username,
		Role:     string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify validates a signed token and reconstructs its principal.
func (t *Tokens) Verify(raw string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &Principal{
		UserID:   userID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
