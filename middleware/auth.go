package middleware

import (
	"strings"

	"qc-laptop/services"
	"qc-laptop/types"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"
)

const (
	localActor  = "actor"
	localClaims = "claims"
)

// TokenValidator is satisfied by *services.TokenManager.
type TokenValidator interface {
	Validate(token string) (*services.Claims, error)
}

// AuthMiddleware memvalidasi header "Authorization: Bearer <token>" lalu
// menyimpan actor ke ctx.Locals.
func AuthMiddleware(tokens TokenValidator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.Error(ctx, utils.Unauthorized("Token tidak ditemukan"))
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			return utils.Error(ctx, utils.Unauthorized("Format Authorization header tidak valid"))
		}

		claims, err := tokens.Validate(tokenParts[1])
		if err != nil {
			return utils.Error(ctx, utils.Unauthorized("Token tidak valid atau sudah kadaluarsa"))
		}

		ctx.Locals(localClaims, claims)
		ctx.Locals(localActor, services.Actor{
			UserID: claims.UserID,
			Name:   claims.FullName,
			Role:   claims.Role,
			IP:     ctx.IP(),
		})
		return ctx.Next()
	}
}

// RequireRole harus dipasang setelah AuthMiddleware.
func RequireRole(roles ...types.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor, ok := ActorFrom(ctx)
		if !ok {
			return utils.Error(ctx, utils.Unauthorized("Token tidak ditemukan"))
		}
		if !slices.Contains(roles, actor.Role) {
			return utils.Error(ctx, utils.Forbidden("Akses ditolak"))
		}
		return ctx.Next()
	}
}

func ActorFrom(ctx *fiber.Ctx) (services.Actor, bool) {
	actor, ok := ctx.Locals(localActor).(services.Actor)
	return actor, ok
}

func ClaimsFrom(ctx *fiber.Ctx) (*services.Claims, bool) {
	claims, ok := ctx.Locals(localClaims).(*services.Claims)
	return claims, ok
}
