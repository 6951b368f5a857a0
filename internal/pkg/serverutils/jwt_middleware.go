package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware resolves the bearer token to a caller identity before
// the request body is even parsed. It only verifies tokens; issuing
// them belongs to the identity provider, not this service.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return NewUnauthorized("NO_CREDENTIAL", "missing authorization header")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return NewUnauthorized("INVALID_TOKEN", "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return NewUnauthorized("INVALID_TOKEN", "invalid claims")
	}

	// Supabase-style tokens carry the user id in "sub".
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return NewUnauthorized("INVALID_TOKEN", "token has no subject")
	}

	ctx.Locals("user_id", sub)
	return ctx.Next()
}
