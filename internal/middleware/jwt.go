package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/token"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

const identityLocal = "identity"

// Authenticate returns a middleware that validates bearer tokens and binds
// the caller's identity to the request. A missing header is unauthenticated;
// a header carrying a bad or expired token is forbidden.
func Authenticate(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := strings.TrimSpace(c.Get("Authorization"))
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Access token required")
		}

		const bearer = "bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "Access token required")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Access token required")
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusForbidden, "Invalid or expired token")
		}

		c.Locals(identityLocal, identity)
		c.Locals("user_id", identity.UserID)
		c.Locals("user_role", string(identity.Role))

		return c.Next()
	}
}

// IdentityFromCtx returns the authenticated identity bound by Authenticate.
// The zero Identity means the request never passed authentication.
func IdentityFromCtx(c *fiber.Ctx) policy.Identity {
	if value := c.Locals(identityLocal); value != nil {
		if identity, ok := value.(policy.Identity); ok {
			return identity
		}
	}
	return policy.Identity{}
}
