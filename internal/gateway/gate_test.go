package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sethuso/product-management-system/internal/service"
)

const testSecret = "gateway-test-secret"

func newTestGate() (*Gate, *service.TokenService) {
	tokens := service.NewTokenService(testSecret)
	rules := NewRules([]string{"PRICING-SERVICE", "INVENTORY-SERVICE", "PRODUCT-SERVICE"})
	return NewGate(rules, tokens), tokens
}

func bearer(t *testing.T, tokens *service.TokenService, role string) string {
	t.Helper()
	token, err := tokens.Issue("alice@example.com", "alice", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestDecide_OpenPathsSkipAuthentication(t *testing.T) {
	gate, _ := newTestGate()

	for _, path := range []string{
		"/login",
		"/validate",
		"/com/api/user-service/users",
		"/health",
	} {
		decision := gate.Decide(path, "", "")
		assert.Equal(t, Forward, decision.Outcome, "path %s", path)
	}
}

func TestDecide_UserLookupAndDeactivationPathNeedsToken(t *testing.T) {
	gate, tokens := newTestGate()

	// Registration stays open by prefix, but the sibling /user path
	// (lookup and deactivation) must not inherit that exemption.
	decision := gate.Decide("/com/api/user-service/user", "", "")
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "AUTHORIZATION header is missing", decision.Message)

	decision = gate.Decide("/com/api/user-service/user", "", bearer(t, tokens, "USER"))
	assert.Equal(t, ForwardWithIdentity, decision.Outcome)
}

func TestHandle_UnauthenticatedAccountDeletionIsRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate, _ := newTestGate()

	reached := false
	router := gin.New()
	router.Use(gate.Handle())
	router.DELETE("/com/api/user-service/user", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodDelete, "/com/api/user-service/user?id=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "AUTHORIZATION header is missing")
}

func TestDecide_TrustedServiceBypassesTokenCheck(t *testing.T) {
	gate, _ := newTestGate()

	decision := gate.Decide("/com/api/products/getByProductId", "PRICING-SERVICE", "")
	assert.Equal(t, Forward, decision.Outcome)
}

func TestDecide_UnknownServiceNameStillNeedsToken(t *testing.T) {
	gate, _ := newTestGate()

	decision := gate.Decide("/com/api/products", "ROGUE-SERVICE", "")
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "AUTHORIZATION header is missing", decision.Message)
}

func TestDecide_MissingAuthorizationHeader(t *testing.T) {
	gate, _ := newTestGate()

	decision := gate.Decide("/com/api/products", "", "")
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "AUTHORIZATION header is missing", decision.Message)
}

func TestDecide_MalformedAuthorizationHeader(t *testing.T) {
	gate, tokens := newTestGate()

	token, err := tokens.Issue("alice@example.com", "alice", "USER")
	require.NoError(t, err)

	decision := gate.Decide("/com/api/products", "", token)
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusBadRequest, decision.Status)
	assert.Equal(t, "Invalid Authorization header format", decision.Message)
}

func TestDecide_EmptyBearerToken(t *testing.T) {
	gate, _ := newTestGate()

	decision := gate.Decide("/com/api/products", "", "Bearer  ")
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "Bearer token is empty", decision.Message)
}

func TestDecide_ExpiredToken(t *testing.T) {
	gate, _ := newTestGate()

	claims := service.Claims{
		Email: "alice@example.com",
		Role:  "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	decision := gate.Decide("/com/api/products", "", "Bearer "+expired)
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "Your session has expired. Please log in again", decision.Message)
}

func TestDecide_ForgedSignature(t *testing.T) {
	gate, _ := newTestGate()

	forger := service.NewTokenService("attacker-secret")
	token, err := forger.Issue("alice@example.com", "alice", "ADMIN")
	require.NoError(t, err)

	decision := gate.Decide("/com/api/categories", "", "Bearer "+token)
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "Token signature could not be verified. Please log in again", decision.Message)
}

func TestDecide_GarbageToken(t *testing.T) {
	gate, _ := newTestGate()

	decision := gate.Decide("/com/api/products", "", "Bearer garbage")
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, http.StatusUnauthorized, decision.Status)
	assert.Equal(t, "Bearer token is malformed. Please log in again", decision.Message)
}

func TestDecide_AdminOnlyPrefixes(t *testing.T) {
	gate, tokens := newTestGate()

	for _, path := range []string{
		"/com/api/categories",
		"/com/api/category-service/categories",
	} {
		decision := gate.Decide(path, "", bearer(t, tokens, "USER"))
		assert.Equal(t, Reject, decision.Outcome, "path %s", path)
		assert.Equal(t, http.StatusForbidden, decision.Status)
		assert.Equal(t, "Administrator role is required for category management", decision.Message)

		decision = gate.Decide(path, "", bearer(t, tokens, "ADMIN"))
		assert.Equal(t, ForwardWithIdentity, decision.Outcome, "path %s", path)
	}

	decision := gate.Decide("/assign-role", "", bearer(t, tokens, "USER"))
	assert.Equal(t, Reject, decision.Outcome)
	assert.Equal(t, "Administrator role is required to assign roles", decision.Message)

	decision = gate.Decide("/assign-role", "", bearer(t, tokens, "ADMIN"))
	assert.Equal(t, ForwardWithIdentity, decision.Outcome)
}

func TestDecide_AuthenticatedUserReachesUnrestrictedPaths(t *testing.T) {
	gate, tokens := newTestGate()

	decision := gate.Decide("/com/api/products", "", bearer(t, tokens, "USER"))
	assert.Equal(t, ForwardWithIdentity, decision.Outcome)
}

func TestHandle_RejectWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate, _ := newTestGate()

	router := gin.New()
	router.Use(gate.Handle())
	router.GET("/com/api/products", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/com/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHORIZATION header is missing")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHandle_ForwardInjectsTraceHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate, tokens := newTestGate()

	var traceHeader string
	router := gin.New()
	router.Use(gate.Handle())
	router.GET("/com/api/products", func(c *gin.Context) {
		traceHeader = c.Request.Header.Get("X-Trace-Id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/com/api/products", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "USER"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, traceHeader)
}
