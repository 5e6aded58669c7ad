package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/auth"
)

const localsUserKey = "STAFF_USER"

// RequireAuth validates the bearer token and loads the staff user into the
// request context. Webhook routes do not use this; their trust comes from
// signature verification instead.
func RequireAuth(tokens *auth.TokenService, directory *auth.Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return unauthorized(c, "Missing bearer token")
		}
		claims, err := tokens.Verify(token, auth.TokenTypeAccess)
		if err != nil {
			return unauthorized(c, "Could not validate credentials")
		}
		user := directory.Get(claims.Subject)
		if user == nil || user.Disabled {
			return unauthorized(c, "Could not validate credentials")
		}
		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// RequireAnyRole gates a route behind role membership. Must run after
// RequireAuth.
func RequireAnyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Login required")
		}
		if !user.HasAnyRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "Operation requires one of these roles: " + strings.Join(roles, ", "),
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated staff user, or nil outside protected
// routes.
func CurrentUser(c *fiber.Ctx) *models.StaffUser {
	user, _ := c.Locals(localsUserKey).(*models.StaffUser)
	return user
}

func extractBearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": message,
	})
}
