package routes

import (
	"github.com/anjiri1684/institute_backoffice/handlers"
	"github.com/anjiri1684/institute_backoffice/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("", handlers.RecordPayment)
	payments.Get("/:paymentId", handlers.GetPayment)
	payments.Patch("/:paymentId", middleware.ManagerRequired(), handlers.UpdatePayment)
	payments.Delete("/:paymentId", middleware.ManagerRequired(), handlers.DeletePayment)
	payments.Get("/:paymentId/receipt", handlers.GetPaymentReceipt)
}
