package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/GoldenFighter/contestboard/internal/utils"
)

// IdentityKey is the locals key carrying the caller's email-shaped identity.
// Authentication happens upstream; this middleware only resolves the
// identity claim out of an already-issued token.
const IdentityKey = "user_email"

// JWTProtected returns a middleware that validates bearer tokens and binds
// the caller's email identity to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		email := extractEmailFromClaims(claims)
		if email == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "token carries no identity")
		}

		c.Locals(IdentityKey, email)

		return c.Next()
	}
}

// Identity returns the authenticated email bound to the request, or "".
func Identity(c *fiber.Ctx) string {
	if value := c.Locals(IdentityKey); value != nil {
		if email, ok := value.(string); ok {
			return email
		}
	}
	return ""
}

func extractEmailFromClaims(claims jwt.MapClaims) string {
	keys := []string{"email", "sub", "preferred_username"}
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if email, ok := value.(string); ok {
				email = strings.ToLower(strings.TrimSpace(email))
				if strings.Contains(email, "@") {
					return email
				}
			}
		}
	}

	return ""
}
