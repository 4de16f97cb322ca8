package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func AnalyticsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	analytics := api.Group("/analytics", middleware.Protected())
	analytics.Get("/dashboard", handlers.GetDashboardSummary)
	analytics.Get("/collections", middleware.ManagerRequired(), handlers.GetCollectionReport)
	analytics.Get("/defaulters", handlers.GetDefaultersReport)
}
