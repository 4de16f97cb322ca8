package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func TrainerRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	trainers := api.Group("/trainers", middleware.Protected())
	trainers.Get("", handlers.ListTrainers)
	trainers.Get("/:trainerId", handlers.GetTrainer)
	trainers.Post("", middleware.AdminRequired(), handlers.CreateTrainer)
	trainers.Patch("/:trainerId", middleware.ManagerRequired(), handlers.UpdateTrainer)
}
