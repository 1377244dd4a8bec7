package handler

import (
	"github.com/gofiber/fiber/v2"

	"noteapi/internal/http/middleware"
	"noteapi/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func Register(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := userSvc.Register(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login verifies credentials and returns a bearer token.
func Login(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		token, err := userSvc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"token": token})
	}
}

// ResolveUser looks up a user ID by email; the share flow uses it to turn a
// typed-in collaborator email into an ID.
func ResolveUser(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Query("email")
		user, err := userSvc.ResolveEmail(c.UserContext(), email)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"user_id": user.ID, "email": user.Email})
	}
}

// CurrentUser returns the caller's ID and email.
func CurrentUser(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID := middleware.CallerID(c)
		email, err := userSvc.EmailOf(c.UserContext(), callerID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"user_id": callerID, "email": email})
	}
}
