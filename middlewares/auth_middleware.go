package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/responses"
)

// AuthMiddleware validates the bearer token and stores the resolved user id
// and role in Locals. Every cart and order operation runs behind it.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return responses.Fail(c, fiber.StatusUnauthorized, "No auth token, access denied")
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return responses.Fail(c, fiber.StatusUnauthorized, "Invalid authorization header format")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(bearerToken[1], claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return responses.Fail(c, fiber.StatusUnauthorized, "Token verification failed, access denied")
		}

		userID, ok := claims["id"].(string)
		if !ok || userID == "" {
			return responses.Fail(c, fiber.StatusUnauthorized, "User ID not found in token")
		}

		c.Locals("userId", userID)
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

// AdminOnly rejects requests whose token does not carry the admin role. Must
// run after AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != models.RoleAdmin {
			return responses.Fail(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}
