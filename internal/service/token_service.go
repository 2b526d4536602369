package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, classified so callers can choose a user-actionable
// message instead of surfacing raw library errors.
var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
)

// Claims carried by every issued token.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"userName"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. Verification is
// stateless: there is no revocation list, so an issued token stays valid
// until its natural expiry.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService constructs a TokenService with a 12 hour token validity.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		validity: 12 * time.Hour,
	}
}

// Issue creates a signed token for the given subject with a role claim.
func (s *TokenService) Issue(email, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    email,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token, returning its claims. Failures are
// classified into ErrTokenEmpty, ErrTokenExpired, ErrTokenSignature, or
// ErrTokenMalformed.
func (s *TokenService) Verify(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenEmpty
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignature
	case err != nil:
		return nil, ErrTokenMalformed
	case !parsed.Valid:
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
