package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	students := api.Group("/students", middleware.Protected())
	students.Post("", handlers.CreateStudent)
	students.Get("", handlers.ListStudents)
	students.Get("/:studentId", handlers.GetStudent)
	students.Patch("/:studentId", handlers.UpdateStudent)
	students.Delete("/:studentId", middleware.AdminRequired(), handlers.DeleteStudent)

	students.Get("/:studentId/payments", handlers.ListStudentPayments)
	students.Post("/:studentId/reconcile", middleware.ManagerRequired(), handlers.ReconcileStudentLedger)
}
