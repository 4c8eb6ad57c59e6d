package controllers

import (
	"qc-laptop/controllers/helpers"
	"qc-laptop/services"
	"qc-laptop/utils"

	"github.com/gofiber/fiber/v2"
)

type QCController struct {
	QC      *services.QCService
	Reports *services.ReportService
}

func NewQCController(qc *services.QCService, reports *services.ReportService) *QCController {
	return &QCController{QC: qc, Reports: reports}
}

func (c *QCController) GetAllSessions(ctx *fiber.Ctx) error {
	start, err := c.Reports.ParseDate(ctx.Query("startDate"))
	if err != nil {
		return utils.Error(ctx, err)
	}
	end, err := c.Reports.ParseDate(ctx.Query("endDate"))
	if err != nil {
		return utils.Error(ctx, err)
	}
	userID, err := helpers.QueryID(ctx, "qcUserId")
	if err != nil {
		return utils.Error(ctx, err)
	}

	query := services.SessionQuery{
		Search:    ctx.Query("search"),
		Status:    ctx.Query("status"),
		StartDate: start,
		EndDate:   services.DayEnd(end),
		QCUserID:  userID,
	}
	sessions, page, err := c.QC.ListSessions(query, utils.ResolvePaging(ctx, 20, 100))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.SuccessPage(ctx, "OK", sessions, page)
}

func (c *QCController) GetChecklistTemplate(ctx *fiber.Ctx) error {
	return utils.Success(ctx, fiber.StatusOK, "OK", services.Template())
}

// GetSession juga melayani /qc/:id/edit, datanya sama.
func (c *QCController) GetSession(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	detail, err := c.QC.GetSession(id)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "OK", detail)
}

func (c *QCController) StartSession(ctx *fiber.Ctx) error {
	var input services.StartSessionInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	result, err := c.QC.StartSession(input, helpers.Actor(ctx))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusCreated, "QC berhasil dimulai", result)
}

func (c *QCController) UpdateChecklistItem(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "itemId")
	if err != nil {
		return utils.Error(ctx, err)
	}
	var input services.ItemUpdate
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	item, err := c.QC.UpdateChecklistItem(id, input)
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Checklist berhasil diupdate", item)
}

func (c *QCController) SubmitSession(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	var input services.SubmitInput
	if err := helpers.ParseBody(ctx, &input); err != nil {
		return utils.Error(ctx, err)
	}
	result, err := c.QC.SubmitSession(id, input, helpers.Actor(ctx))
	if err != nil {
		return utils.Error(ctx, err)
	}

	msg := "QC berhasil diselesaikan"
	if result.IsEdit {
		msg = "QC berhasil diedit"
	}
	return utils.Success(ctx, fiber.StatusOK, msg, result)
}

func (c *QCController) UploadAttachments(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.Error(ctx, utils.Validation("Tidak ada file yang diupload"))
	}

	attachments, err := c.QC.UploadAttachments(id, form.File["photos"], ctx.FormValue("description"), helpers.Actor(ctx))
	if err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusCreated, "File berhasil diupload", attachments)
}

func (c *QCController) DeleteAttachment(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "attachmentId")
	if err != nil {
		return utils.Error(ctx, err)
	}
	if err := c.QC.DeleteAttachment(id); err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "Attachment berhasil dihapus", nil)
}

func (c *QCController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return utils.Error(ctx, err)
	}
	if err := c.QC.DeleteSession(id, helpers.Actor(ctx)); err != nil {
		return utils.Error(ctx, err)
	}
	return utils.Success(ctx, fiber.StatusOK, "QC record dan data terkait berhasil dihapus", nil)
}
