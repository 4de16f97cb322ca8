package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func AssignmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	assignments := api.Group("/assignments", middleware.Protected())
	assignments.Post("", middleware.TrainerRequired(), handlers.CreateAssignment)
	assignments.Post("/:assignmentId/submissions", handlers.SubmitAssignment)
	assignments.Get("/:assignmentId/submissions", handlers.ListAssignmentSubmissions)

	submissions := api.Group("/submissions", middleware.Protected())
	submissions.Patch("/:submissionId/grade", middleware.TrainerRequired(), handlers.GradeSubmission)
}
