package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vamsidadi/playstore-backend/internal/auth"
	"github.com/vamsidadi/playstore-backend/internal/config"
	"github.com/vamsidadi/playstore-backend/internal/dto"
)

// Protected rejects requests that do not carry a valid, unexpired token.
// The token travels as the raw Authorization header value; no "Bearer"
// scheme. On success the parsed token is stored in c.Locals("user").
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:Authorization",
		AuthScheme:  "",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			// Missing vs invalid/expired only changes the message
			message := "Invalid token"
			if c.Get(fiber.HeaderAuthorization) == "" {
				message = "Unauthorized"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: message,
			})
		},
	})
}

// RequireRoles allows the request through only when the token's role is
// in the given set. It carries no route knowledge; routes declare their
// own allowed roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := CurrentClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "Unauthorized",
			})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Message: "Forbidden",
		})
	}
}

// CurrentClaims extracts the typed claims the JWT middleware stored in
// the request context.
func CurrentClaims(c *fiber.Ctx) (*auth.Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("no token in context")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return auth.FromMapClaims(mc)
}
