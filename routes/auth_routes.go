package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.LoginUser)
	api.Post("/auth/register", middleware.Protected(), middleware.AdminRequired(), handlers.RegisterUser)

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Patch("", handlers.UpdateProfile)
}
