package middleware

import (
	"context"
	"crm-app/config"
	"crm-app/models"
	"crm-app/types"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// UserLookup resolves the signed-in email to a provisioned user, for tokens
// that carry no user_id claim.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// NewAuthMiddleware checks the bearer token and the email allow-list, then
// stores "email" and "userID" in Locals. users may be nil.
func NewAuthMiddleware(users UserLookup, log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Missing Authorization header",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid Authorization header format",
			})
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenParts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(config.JWTSecret), nil
		}, jwt.WithExpirationRequired())
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized: Invalid token",
			})
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized: Missing email claim",
			})
		}
		if !config.IsEmailAllowed(email) {
			log.Warn("Email not on allow-list", zap.String("email", email))
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Forbidden: Email is not allowed",
			})
		}
		ctx.Locals("email", email)

		userID, err := userIDClaim(claims)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized: Invalid user ID",
			})
		}
		if userID.IsZero() && users != nil {
			if user, err := users.GetUserByEmail(ctx.UserContext(), email); err == nil {
				userID = user.ID
			} else if !types.IsNotFound(err) {
				log.Error("Failed to resolve user by email", zap.String("email", email), zap.Error(err))
			}
		}
		if !userID.IsZero() {
			ctx.Locals("userID", userID)
		}

		return ctx.Next()
	}
}

// userIDClaim accepts the id as a string or a JSON number. A missing claim
// yields zero.
func userIDClaim(claims jwt.MapClaims) (types.SnowflakeID, error) {
	switch v := claims["user_id"].(type) {
	case nil:
		return 0, nil
	case string:
		return types.ParseSnowflakeID(v)
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("invalid user_id %v", v)
		}
		return types.SnowflakeID(v), nil
	default:
		return 0, fmt.Errorf("invalid user_id type %T", v)
	}
}
