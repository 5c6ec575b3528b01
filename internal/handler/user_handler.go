package handler

import (
	"errors"
	"log"
	"strings"

	"bizflow-backend/internal/middleware"
	"bizflow-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles user creation
// POST /users
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}
		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("user registration error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An error occurred while creating the user"})
	}

	return c.Status(fiber.StatusCreated).JSON(user.ToResponse())
}

// Me returns the authenticated user's profile
// GET /users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(user.ToResponse())
}
