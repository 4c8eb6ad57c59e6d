package routes

import (
	"qc-laptop/middleware"
	"qc-laptop/types"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(router fiber.Router, h *Handlers) {
	api := router.Group("/reports", middleware.AuthMiddleware(h.Tokens))
	operator := middleware.RequireRole(types.RoleLeader, types.RoleStaff)

	api.Get("/dashboard", h.Reports.Dashboard)
	api.Get("/history", h.Reports.History)
	api.Get("/export/pdf", operator, h.Reports.ExportPDF)
	api.Get("/export/excel", operator, h.Reports.ExportExcel)
}
