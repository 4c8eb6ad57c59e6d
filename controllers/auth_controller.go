package controllers

import (
	"qc-laptop/controllers/helpers"
	"qc-laptop/middleware"
	"qc-laptop/services"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input services.LoginInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.Error(ctx, err)
	}

	result, err := c.Auth.Login(input, ctx.IP())
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Login berhasil", result)
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	user, err := c.Auth.Me(helpers.Actor(ctx))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", user)
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	username := ""
	if claims, ok := middleware.ClaimsFrom(ctx); ok {
		username = claims.Username
	}
	if err := c.Auth.Logout(helpers.Actor(ctx), username); err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Logout berhasil", nil)
}

func (c *AuthController) ChangePassword(ctx *fiber.Ctx) error {
	var input services.ChangePasswordInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	if err := c.Auth.ChangePassword(helpers.Actor(ctx), input); err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Password berhasil diubah", nil)
}
