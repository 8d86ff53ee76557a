package auth

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

const identityKey = "auth_identity"

// gatewayMarkerHeader is set by the public gateway on every forwarded
// request. A request carrying neither this marker nor an authorization
// header is classified as an internal trusted invocation.
const gatewayMarkerHeader = "X-Forwarded-For"

// Middleware enforces authentication and identity-ownership checks before
// requests reach business logic. It never touches storage.
type Middleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewMiddleware constructs middleware. A nil verifier means the identity
// provider is not configured; every authenticated request then fails
// closed with 401.
func NewMiddleware(verifier TokenVerifier, logger *zap.Logger) *Middleware {
	return &Middleware{verifier: verifier, logger: logger}
}

// RequireAuth rejects unauthenticated requests and injects the verified
// identity into the request context.
func (m *Middleware) RequireAuth(c *fiber.Ctx) error {
	identity, err := m.authenticate(c)
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// RequireUserMatch additionally enforces that the authenticated identity
// matches the target user referenced by the request. Internal invocations
// bypass all checks.
func (m *Middleware) RequireUserMatch(c *fiber.Ctx) error {
	if isInternal(c) {
		m.logger.Debug("internal invocation, bypassing auth")
		return c.Next()
	}

	identity, err := m.authenticate(c)
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)

	// No extractable target means identity is implied by the token alone.
	if target := targetUserID(c); target != "" && target != identity.Username {
		return apperrors.NewForbidden("you are not authorized to access this resource")
	}
	return c.Next()
}

func (m *Middleware) authenticate(c *fiber.Ctx) (*Identity, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, apperrors.NewUnauthorized("no authentication token provided", nil)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.NewUnauthorized("invalid authorization header", nil)
	}

	if m.verifier == nil {
		return nil, apperrors.NewUnauthorized("authentication unavailable", ErrVerifierUnavailable)
	}

	identity, err := m.verifier.Verify(parts[1])
	if err != nil {
		m.logger.Debug("token verification failed", zap.Error(err))
		return nil, apperrors.NewUnauthorized("invalid authentication token", nil)
	}
	return identity, nil
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

func isInternal(c *fiber.Ctx) bool {
	return c.Get(fiber.HeaderAuthorization) == "" && c.Get(gatewayMarkerHeader) == ""
}

// targetUserID extracts the target user from path, query, then body, first
// match wins.
func targetUserID(c *fiber.Ctx) string {
	if id := c.Params("userId"); id != "" {
		return id
	}
	if id := c.Query("userId"); id != "" {
		return id
	}
	if body := c.Body(); len(body) > 0 {
		var payload struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			return payload.UserID
		}
	}
	return ""
}
