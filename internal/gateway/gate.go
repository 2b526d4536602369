package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/middleware"
	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// Outcome is the terminal state of the per-request authorization decision.
type Outcome int

const (
	// Forward passes the request through unmodified (open path or
	// trusted internal caller).
	Forward Outcome = iota
	// ForwardWithIdentity passes the request through with an injected
	// trace id, preserving the original Authorization header.
	ForwardWithIdentity
	// Reject short-circuits the request with an error payload.
	Reject
)

// Decision is the result of evaluating one request against the gateway
// rules. Status and Message are meaningful only for Reject.
type Decision struct {
	Outcome Outcome
	Status  int
	Message string
}

// Gate is the gateway's authorization core: it classifies the path,
// applies the trusted-service bypass, verifies bearer tokens, and enforces
// path-based role rules.
type Gate struct {
	rules  *Rules
	tokens *service.TokenService
}

// NewGate constructs a Gate over an immutable rule set.
func NewGate(rules *Rules, tokens *service.TokenService) *Gate {
	return &Gate{rules: rules, tokens: tokens}
}

// Decide evaluates a single request. It is a pure function of the path,
// the claimed service identity, and the Authorization header.
func (g *Gate) Decide(path, serviceName, authHeader string) Decision {
	if g.rules.IsOpen(path) {
		return Decision{Outcome: Forward}
	}

	// Intra-cluster trust boundary: a recognized Service-Name skips
	// token verification entirely.
	if g.rules.IsTrusted(serviceName) {
		return Decision{Outcome: Forward}
	}

	if authHeader == "" {
		return Decision{Outcome: Reject, Status: http.StatusUnauthorized, Message: "AUTHORIZATION header is missing"}
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Decision{Outcome: Reject, Status: http.StatusBadRequest, Message: "Invalid Authorization header format"}
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return Decision{Outcome: Reject, Status: http.StatusUnauthorized, Message: verificationMessage(err)}
	}

	if rule, ok := g.rules.RequiredRole(path); ok && claims.Role != rule.Role {
		return Decision{Outcome: Reject, Status: http.StatusForbidden, Message: rule.Message}
	}

	return Decision{Outcome: ForwardWithIdentity}
}

// verificationMessage maps a classified verification failure to a
// user-actionable message. Raw library errors never reach the client.
func verificationMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "Your session has expired. Please log in again"
	case errors.Is(err, service.ErrTokenSignature):
		return "Token signature could not be verified. Please log in again"
	case errors.Is(err, service.ErrTokenEmpty):
		return "Bearer token is empty"
	default:
		return "Bearer token is malformed. Please log in again"
	}
}

// Handle returns the gin middleware enforcing the gate on every inbound
// request. Every decision is logged with the path and the per-request
// trace id set by the logging middleware.
func (g *Gate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		traceID := utils.TraceID(c)

		decision := g.Decide(path, c.GetHeader("Service-Name"), c.GetHeader("Authorization"))

		switch decision.Outcome {
		case Reject:
			log.Error().Str("trace_id", traceID).Str("path", path).Int("status", decision.Status).
				Str("reason", decision.Message).Msg("request rejected")
			utils.Error(c, decision.Status, decision.Message)
			c.Abort()
		case ForwardWithIdentity:
			log.Info().Str("trace_id", traceID).Str("path", path).Msg("request authorized")
			c.Request.Header.Set(middleware.TraceHeader, traceID)
			c.Next()
		default:
			log.Info().Str("trace_id", traceID).Str("path", path).Msg("request forwarded")
			c.Request.Header.Set(middleware.TraceHeader, traceID)
			c.Next()
		}
	}
}
