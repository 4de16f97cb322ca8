package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/ledger"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/anjiri1684/institute_backoffice/services"
	"github.com/anjiri1684/institute_backoffice/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func ledgerService() *ledger.Service {
	return ledger.NewService(database.DB)
}

func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrExceedsDue):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrStudentNotFound), errors.Is(err, ledger.ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("🔥 Payment operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payment"})
	}
}

func parsePaymentDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}

type RecordPaymentRequest struct {
	StudentID            string      `json:"student_id" validate:"required,uuid"`
	Amount               interface{} `json:"amount"`
	PaymentDate          string      `json:"payment_date" validate:"required"`
	PaymentMethod        string      `json:"payment_method" validate:"required,oneof=cash bank_transfer upi check other"`
	Status               string      `json:"status" validate:"omitempty,oneof=completed pending failed"`
	TransactionReference *string     `json:"transaction_reference,omitempty"`
	Notes                *string     `json:"notes,omitempty"`
}

func RecordPayment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	collectorID, _ := uuid.Parse(claims["user_id"].(string))

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, _ := uuid.Parse(req.StudentID)
	paymentDate, err := parsePaymentDate(req.PaymentDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment date"})
	}

	payment, err := ledgerService().RecordPayment(ledger.RecordPaymentInput{
		StudentID:            studentID,
		Amount:               req.Amount,
		PaymentDate:          paymentDate,
		PaymentMethod:        req.PaymentMethod,
		Status:               req.Status,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
		RecordedByID:         &collectorID,
	})
	if err != nil {
		return ledgerError(c, err)
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err == nil {
		websocket.Broadcast <- &websocket.PaymentEvent{
			Action:        "recorded",
			PaymentID:     payment.ID.String(),
			StudentID:     student.ID.String(),
			StudentName:   student.FullName,
			ReceiptNumber: payment.ReceiptNumber,
			Amount:        payment.Amount,
			FeeDue:        student.FeeDue,
		}

		go services.GenerateAndSendReceipt(*payment, student)
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

type AmendPaymentRequest struct {
	Amount               interface{} `json:"amount,omitempty"`
	PaymentDate          *string     `json:"payment_date,omitempty"`
	PaymentMethod        *string     `json:"payment_method,omitempty" validate:"omitempty,oneof=cash bank_transfer upi check other"`
	Status               *string     `json:"status,omitempty" validate:"omitempty,oneof=completed pending failed"`
	TransactionReference *string     `json:"transaction_reference,omitempty"`
	Notes                *string     `json:"notes,omitempty"`
}

func UpdatePayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var req AmendPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := ledger.AmendPaymentInput{
		Amount:               req.Amount,
		PaymentMethod:        req.PaymentMethod,
		Status:               req.Status,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
	}
	if req.PaymentDate != nil {
		parsed, err := parsePaymentDate(*req.PaymentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment date"})
		}
		input.PaymentDate = &parsed
	}

	payment, err := ledgerService().AmendPayment(paymentID, input)
	if err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(payment)
}

func DeletePayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	if err := ledgerService().RemovePayment(paymentID); err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payment deleted and ledger adjusted"})
}

func GetPayment(c *fiber.Ctx) error {
	paymentID := c.Params("paymentId")
	if _, err := uuid.Parse(paymentID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var payment models.Payment
	err := database.DB.Preload("Student").Preload("RecordedBy").First(&payment, "id = ?", paymentID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	return c.JSON(payment)
}

func ListStudentPayments(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	if _, err := uuid.Parse(studentID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID format"})
	}

	var payments []models.Payment
	err := database.DB.Where("student_id = ?", studentID).
		Order("payment_date desc").
		Find(&payments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(payments)
}

// GetPaymentReceipt returns the receipt PDF URL, generating and uploading it
// on first request.
func GetPaymentReceipt(c *fiber.Ctx) error {
	paymentID := c.Params("paymentId")
	if _, err := uuid.Parse(paymentID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var payment models.Payment
	if err := database.DB.Preload("Student").First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if payment.ReceiptURL != nil {
		return c.JSON(fiber.Map{"receipt_url": *payment.ReceiptURL})
	}

	url, err := services.GenerateReceiptPDF(payment, payment.Student)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt for payment %s: %v", paymentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate receipt"})
	}

	payment.ReceiptURL = &url
	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save receipt URL"})
	}

	return c.JSON(fiber.Map{"receipt_url": url})
}

// ReconcileStudentLedger resums the student's completed payments and repairs
// any drift, for support staff chasing a suspect balance.
func ReconcileStudentLedger(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID format"})
	}

	repaired, err := ledgerService().ReconcileStudent(studentID)
	if err != nil {
		return ledgerError(c, err)
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	message := "Ledger already consistent"
	if repaired {
		message = fmt.Sprintf("Ledger repaired: fee_paid=%.2f fee_due=%.2f", student.FeePaid, student.FeeDue)
	}
	return c.JSON(fiber.Map{"message": message, "student": student})
}
