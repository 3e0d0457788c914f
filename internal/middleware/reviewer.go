package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ReviewerRequired guards review-mode endpoints with an HS256 bearer token.
// There is no user model here; any token signed with the shared secret and
// carrying role=reviewer passes.
func ReviewerRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return Unauthorized("Review mode is not configured")
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return Unauthorized("Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "reviewer" {
			return Unauthorized("Insufficient permissions")
		}

		return c.Next()
	}
}
