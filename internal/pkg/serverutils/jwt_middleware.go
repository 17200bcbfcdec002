package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// MerchantJwtMiddleware authenticates merchant-side requests. The token is
// issued by the merchant portal; merchant_id ends up in ctx locals.
func MerchantJwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseBearer(ctx)
	if err != nil {
		return err
	}

	merchantID, _ := claims["merchant_id"].(string)
	if merchantID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Token has no merchant identity")
	}

	ctx.Locals("merchant_id", merchantID)
	return ctx.Next()
}

// AdminJwtMiddleware authenticates back-office requests and records the
// admin identity used as the decision approver.
func AdminJwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseBearer(ctx)
	if err != nil {
		return err
	}

	if role, _ := claims["role"].(string); role != "admin" {
		return fiber.NewError(fiber.StatusForbidden, "Admin role required")
	}

	adminID, _ := claims["admin_id"].(string)
	if adminID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Token has no admin identity")
	}

	ctx.Locals("approver", adminID)
	return ctx.Next()
}

func parseBearer(ctx *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
	}
	return claims, nil
}
