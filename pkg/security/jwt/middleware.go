package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success it sets the subject into c.Locals("userId") and the email claim
// into c.Locals("email"). Tokens must carry the exact "Bearer " prefix.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return unauthorized(c, "Unauthorized")
		}
		tokenStr := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenStr == "" {
			return unauthorized(c, "Unauthorized")
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return unauthorized(c, "Invalid token")
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return unauthorized(c, "Invalid token")
		}
		if expectedIssuer != "" && claims.RegisteredClaims.Issuer != expectedIssuer {
			return unauthorized(c, "Invalid token")
		}
		c.Locals("userId", claims.RegisteredClaims.Subject)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
