package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cohortly/cohort-api/internal/utils"
)

// JWTProtected returns a middleware that decodes the trusted bearer token
// into the request identity: user_id, user_role and cohort_id locals.
// Authentication itself happens upstream; this only resolves the identity.
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

		if userID := claimUint(claims, "sub", "user_id", "id"); userID != nil {
			c.Locals("user_id", *userID)
		}
		if role := claimString(claims, "role", "user_role"); role != "" {
			c.Locals("user_role", role)
		}
		if cohortID := claimUint(claims, "cohort_id"); cohortID != nil {
			c.Locals("cohort_id", *cohortID)
		}

		return c.Next()
	}
}

func claimUint(claims jwt.MapClaims, keys ...string) *uint {
	for _, key := range keys {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if normalized, err := normalizeUint(value); err == nil {
			return &normalized
		}
	}

	return nil
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if s, ok := value.(string); ok {
				return strings.ToLower(strings.TrimSpace(s))
			}
		}
	}

	return ""
}

func normalizeUint(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid claim value")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid claim value")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported claim type")
	}
}
