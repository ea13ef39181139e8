package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/apperr"
)

// UserObjectID returns the authenticated user's id as stored by
// AuthMiddleware. Fails with Unauthenticated when no identity was resolved.
func UserObjectID(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, apperr.New(apperr.Unauthenticated, "user identity not resolved")
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.Unauthenticated, "invalid user id in token")
	}
	return id, nil
}
