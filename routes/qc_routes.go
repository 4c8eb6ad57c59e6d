package routes

import (
	"qc-laptop/middleware"
	"qc-laptop/types"

	"github.com/gofiber/fiber/v2"
)

func SetupQCRoutes(router fiber.Router, h *Handlers) {
	api := router.Group("/qc", middleware.AuthMiddleware(h.Tokens))
	operator := middleware.RequireRole(types.RoleLeader, types.RoleStaff)
	leader := middleware.RequireRole(types.RoleLeader)

	api.Get("/", h.QC.GetAllSessions)
	api.Get("/checklist-template", h.QC.GetChecklistTemplate)
	api.Post("/start", operator, h.QC.StartSession)
	api.Put("/checklist/:itemId", operator, h.QC.UpdateChecklistItem)
	api.Delete("/attachments/:attachmentId", operator, h.QC.DeleteAttachment)

	api.Get("/:id", h.QC.GetSession)
	api.Get("/:id/edit", operator, h.QC.GetSession)
	api.Post("/:id/submit", operator, h.QC.SubmitSession)
	api.Post("/:id/attachments", operator, h.QC.UploadAttachments)
	api.Delete("/:id", leader, h.QC.DeleteSession)
}
