package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func LeadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	leads := api.Group("/leads", middleware.Protected())
	leads.Post("", handlers.CreateLead)
	leads.Get("", handlers.ListLeads)
	leads.Patch("/:leadId", handlers.UpdateLead)
	leads.Post("/:leadId/assign", middleware.ManagerRequired(), handlers.AssignLead)
	leads.Post("/:leadId/convert", handlers.ConvertLead)
	leads.Delete("/:leadId", middleware.ManagerRequired(), handlers.DeleteLead)
}
