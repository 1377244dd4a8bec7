package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDLocalKey is the context-locals key holding the authenticated caller's
// user ID.
const UserIDLocalKey = "user_id"

// Auth validates the Bearer token on incoming requests and stores the token
// subject (the user ID) in the context locals. Requests without a valid token
// are rejected with 401 before reaching any handler.
func Auth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "could not parse token claims")
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "subject claim missing")
		}

		c.Locals(UserIDLocalKey, sub)
		return c.Next()
	}
}

// CallerID returns the authenticated user ID stored by Auth, or "" when the
// request is unauthenticated.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
