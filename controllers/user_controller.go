package controllers

import (
	"qc-laptop/controllers/helpers"
	"qc-laptop/services"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.Users.GetAllUsers()
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", users)
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	user, err := c.Users.GetUserByID(id)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", user)
}

// GetUsersByRole dipakai form QC untuk memilih officer.
func (c *UserController) GetUsersByRole(ctx *fiber.Ctx) error {
	users, err := c.Users.ActiveByRole(ctx.Params("role"))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", users)
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	user, err := c.Users.CreateUser(input)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusCreated, "User berhasil dibuat", user)
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	var input services.UpdateUserInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	user, err := c.Users.UpdateUser(id, input)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "User berhasil diupdate", user)
}

func (c *UserController) ResetPassword(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	if err := c.Users.ResetPassword(id, input.NewPassword); err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Password berhasil direset", nil)
}

func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	if err := c.Users.Deactivate(id, helpers.Actor(ctx)); err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "User berhasil dinonaktifkan", nil)
}
