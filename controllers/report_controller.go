package controllers

import (
	"bytes"
	"fmt"
	"time"

	"qc-laptop/controllers/helpers"
	"qc-laptop/export"
	"qc-laptop/models"
	"qc-laptop/services"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Reports    *services.ReportService
	HistorySvc *services.HistoryService
}

func NewReportController(reports *services.ReportService, history *services.HistoryService) *ReportController {
	return &ReportController{Reports: reports, HistorySvc: history}
}

func (c *ReportController) Dashboard(ctx *fiber.Ctx) error {
	dashboard, err := c.Reports.Dashboard()
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", dashboard)
}

func (c *ReportController) History(ctx *fiber.Ctx) error {
	start, err := c.Reports.ParseDate(ctx.Query("startDate"))
	if err != nil {
		return utils.Error(ctx, err)
	}
	end, err := c.Reports.ParseDate(ctx.Query("endDate"))
	if err != nil {
		return utils.Error(ctx, err)
	}
	laptopID, err := helpers.QueryID(ctx, "laptopId")
	if err != nil {
		return utils.Error(ctx, err)
	}
	userID, err := helpers.QueryID(ctx, "userId")
	if err != nil {
		return utils.Error(ctx, err)
	}

	query := services.HistoryQuery{
		StartDate:  start,
		EndDate:    services.DayEnd(end),
		UserID:     userID,
		LaptopID:   laptopID,
		ActionType: ctx.Query("actionType"),
	}
	paging := utils.ResolvePaging(ctx, services.DefaultHistoryLimit, services.MaxHistoryLimit)
	rows, page, err := c.HistorySvc.Query(query, paging)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.SuccessPage(ctx, "OK", rows, page)
}

// loadReport membaca startDate/endDate dan nama file laporan.
func (c *ReportController) loadReport(ctx *fiber.Ctx) (*models.ReportData, string, error) {
	startRaw, endRaw := ctx.Query("startDate"), ctx.Query("endDate")
	start, err := c.Reports.ParseDate(startRaw)
	if err != nil {
		return nil, "", err
	}
	end, err := c.Reports.ParseDate(endRaw)
	if err != nil {
		return nil, "", err
	}
	data, err := c.Reports.ReportData(start, end)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("laporan-qc-%s-%s", startRaw, endRaw), nil
}

func (c *ReportController) ExportPDF(ctx *fiber.Ctx) error {
	data, filename, err := c.loadReport(ctx)
	if err != nil {
		return utils.Error(ctx, err)
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, data, c.Reports.Location, time.Now()); err != nil {
		return utils.Error(ctx, utils.Storage(err))
	}

	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
	return ctx.Send(buf.Bytes())
}

func (c *ReportController) ExportExcel(ctx *fiber.Ctx) error {
	data, filename, err := c.loadReport(ctx)
	if err != nil {
		return utils.Error(ctx, err)
	}

	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, data, c.Reports.Location); err != nil {
		return utils.Error(ctx, utils.Storage(err))
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	return ctx.Send(buf.Bytes())
}
