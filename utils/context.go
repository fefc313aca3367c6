package utils

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserIDFrom extracts the authenticated user's id placed in the echo context
// by the auth middleware.
func UserIDFrom(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get("userID").(primitive.ObjectID)
	return id, ok
}
