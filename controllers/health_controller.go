package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC(),
	})
}
