package helpers

import (
	"strings"

	"qc-laptop/middleware"
	"qc-laptop/services"
	"qc-laptop/types"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
)

// Actor mengambil user yang login. Route tanpa AuthMiddleware mendapat Actor kosong.
func Actor(ctx *fiber.Ctx) services.Actor {
	actor, _ := middleware.ActorFrom(ctx)
	return actor
}

func ParamID(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	id, err := types.ParseSnowflakeID(ctx.Params(name))
	if err != nil {
		return 0, utils.Validation("ID tidak valid")
	}
	return id, nil
}

// QueryID mengembalikan 0 kalau parameter kosong.
func QueryID(ctx *fiber.Ctx, key string) (types.SnowflakeID, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	id, err := types.ParseSnowflakeID(raw)
	if err != nil {
		return 0, utils.Validation("Parameter " + key + " tidak valid")
	}
	return id, nil
}

func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return utils.Validation("Body request tidak valid")
	}
	return nil
}
