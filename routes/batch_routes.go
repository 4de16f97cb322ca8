package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func BatchRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	batches := api.Group("/batches", middleware.Protected())
	batches.Get("", handlers.ListBatches)
	batches.Get("/:batchId", handlers.GetBatch)
	batches.Post("", middleware.ManagerRequired(), handlers.CreateBatch)
	batches.Patch("/:batchId", middleware.ManagerRequired(), handlers.UpdateBatch)
	batches.Delete("/:batchId", middleware.AdminRequired(), handlers.DeleteBatch)

	batches.Get("/:batchId/assignments", handlers.ListBatchAssignments)
}
