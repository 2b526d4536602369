package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret)

	token, err := svc.Issue("alice@example.com", "alice", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestTokenService_VerifyEmpty(t *testing.T) {
	svc := NewTokenService(testSecret)

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = svc.Verify("   ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := NewTokenService(testSecret)

	// Sign a token that expired an hour ago with the same secret.
	claims := Claims{
		Email: "bob@example.com",
		Role:  "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "bob@example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("other-secret")
	verifier := NewTokenService(testSecret)

	token, err := issuer.Issue("bob@example.com", "bob", "USER")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	svc := NewTokenService(testSecret)

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = svc.Verify("garbage")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
