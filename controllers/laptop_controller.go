package controllers

import (
	"strconv"

	"qc-laptop/controllers/helpers"
	"qc-laptop/services"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
)

type LaptopController struct {
	Laptops *services.LaptopService
	History *services.HistoryService
}

func NewLaptopController(laptops *services.LaptopService, history *services.HistoryService) *LaptopController {
	return &LaptopController{Laptops: laptops, History: history}
}

func (c *LaptopController) GetAllLaptops(ctx *fiber.Ctx) error {
	query := services.LaptopQuery{
		Search:    ctx.Query("search"),
		Status:    ctx.Query("status"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	laptops, page, err := c.Laptops.Search(query, utils.ResolvePaging(ctx, 20, 100))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.SuccessPage(ctx, "OK", laptops, page)
}

func (c *LaptopController) FindBySerial(ctx *fiber.Ctx) error {
	serial := ctx.Params("serialNumber")
	result, err := c.Laptops.FindBySerial(serial)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Laptop ditemukan", result)
}

func (c *LaptopController) GetLaptopByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	detail, err := c.Laptops.Detail(id)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", detail)
}

func (c *LaptopController) GetLaptopHistory(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	offset, _ := strconv.Atoi(ctx.Query("offset"))

	history, err := c.History.ByLaptop(id, limit, offset)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", history)
}

func (c *LaptopController) CreateLaptop(ctx *fiber.Ctx) error {
	var input services.RegisterLaptopInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	laptop, err := c.Laptops.Register(input, helpers.Actor(ctx))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusCreated, "Laptop berhasil didaftarkan", laptop)
}

func (c *LaptopController) UpdateLaptop(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	var input services.LaptopUpdate
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	laptop, err := c.Laptops.Update(id, input, helpers.Actor(ctx))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Laptop berhasil diupdate", laptop)
}
