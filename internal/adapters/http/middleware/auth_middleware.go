package middleware

import (
	"log"
	"strings"

	"quantfund-staking/internal/adapters/persistence/models"
	"quantfund-staking/internal/config"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Context local keys set by the auth gate
const (
	LocalAccountID = "accountID"
	LocalAddress   = "address"
	LocalRole      = "role"
)

// AuthMiddleware is the credential gate used on every protected endpoint.
// It validates the session credential and attaches the resolved identity to
// the request context before any handler logic runs. Missing, expired and
// malformed credentials are distinct failures.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("Authorization")
		if raw == "" {
			log.Printf("⚠️ Authentication attempt without token [ip: %s, path: %s]", c.IP(), c.Path())
			return domain.NewUnauthorizedError("No authentication token provided")
		}

		// The header value is the token itself; a "Bearer " prefix is
		// accepted but not required.
		accessToken := strings.TrimPrefix(raw, "Bearer ")

		claims, err := token.Validate(accessToken, cfg.Session.Secret)
		if err != nil {
			if err == token.ErrTokenExpired {
				log.Printf("⚠️ Expired token used [ip: %s]", c.IP())
				return domain.NewUnauthorizedError("Authentication token has expired")
			}
			log.Printf("⚠️ Invalid token used [ip: %s]", c.IP())
			return domain.NewUnauthorizedError("Invalid authentication token")
		}

		c.Locals(LocalAccountID, claims.AccountID)
		c.Locals(LocalAddress, claims.Address)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// AdminOnly requires an admin role on top of a valid credential. A valid
// non-admin credential is Forbidden, not Unauthorized.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return domain.NewUnauthorizedError("No authentication token provided")
		}
		if role != models.RoleAdmin {
			log.Printf("⚠️ Non-admin attempted admin access [ip: %s, path: %s]", c.IP(), c.Path())
			return domain.NewForbiddenError("Admin access required")
		}
		return c.Next()
	}
}

// AccountID extracts the authenticated account id set by the gate
func AccountID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalAccountID).(uint)
	return id
}

// Address extracts the authenticated wallet address set by the gate
func Address(c *fiber.Ctx) string {
	addr, _ := c.Locals(LocalAddress).(string)
	return addr
}
