package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses", middleware.Protected())
	courses.Get("", handlers.ListCourses)
	courses.Get("/:courseId", handlers.GetCourse)
	courses.Post("", middleware.ManagerRequired(), handlers.CreateCourse)
	courses.Patch("/:courseId", middleware.ManagerRequired(), handlers.UpdateCourse)
	courses.Delete("/:courseId", middleware.AdminRequired(), handlers.DeleteCourse)
}
