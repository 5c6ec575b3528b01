package middleware

import (
	"errors"
	"log"
	"strings"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/token"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// RequireAuth resolves the bearer token to a live user record and attaches it
// to the request context. Every protected operation runs behind this; there
// is no cross-request caching, so role and active-status are always current.
func RequireAuth(tokens *token.Service, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
			}
			// A storage fault is an infrastructure problem, not a credential
			// problem. Keep the two distinguishable for monitoring.
			log.Printf("auth: user lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}

		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(currentUserKey, user)
		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRole gates an endpoint on the stored role attribute. Wiring it to a
// route is an explicit, auditable decision; most routes only use RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: requires '" + role + "' role",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireAuth, or nil on a route
// that is not behind it.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(currentUserKey).(*model.User)
	return user
}
