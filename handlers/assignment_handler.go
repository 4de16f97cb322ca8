package handlers

import (
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateAssignmentRequest struct {
	BatchID     string  `json:"batch_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,min=3"`
	Description *string `json:"description,omitempty"`
	DueDate     string  `json:"due_date" validate:"required"`
	MaxScore    int     `json:"max_score" validate:"omitempty,gte=1"`
}

func CreateAssignment(c *fiber.Ctx) error {
	var req CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due date"})
	}

	batchID, _ := uuid.Parse(req.BatchID)
	var batch models.Batch
	if err := database.DB.First(&batch, "id = ?", batchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	assignment := models.Assignment{
		BatchID:     batchID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	}
	if req.MaxScore > 0 {
		assignment.MaxScore = req.MaxScore
	}

	if err := database.DB.Create(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func ListBatchAssignments(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	if _, err := uuid.Parse(batchID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batch ID format"})
	}

	var assignments []models.Assignment
	err := database.DB.Where("batch_id = ?", batchID).Order("due_date asc").Find(&assignments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(assignments)
}

type SubmitAssignmentRequest struct {
	StudentID  string  `json:"student_id" validate:"required,uuid"`
	ContentURL *string `json:"content_url,omitempty"`
}

func SubmitAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID format"})
	}

	var req SubmitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var assignment models.Assignment
	if err := database.DB.First(&assignment, "id = ?", assignmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}

	studentID, _ := uuid.Parse(req.StudentID)
	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var existing models.Submission
	err = database.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Assignment already submitted"})
	}

	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		ContentURL:   req.ContentURL,
		SubmittedAt:  time.Now(),
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit assignment"})
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

type GradeSubmissionRequest struct {
	Score    int     `json:"score" validate:"gte=0"`
	Feedback *string `json:"feedback,omitempty"`
}

func GradeSubmission(c *fiber.Ctx) error {
	submissionID := c.Params("submissionId")

	var submission models.Submission
	err := database.DB.Preload("Assignment").First(&submission, "id = ?", submissionID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}

	var req GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Score > submission.Assignment.MaxScore {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Score exceeds the assignment maximum"})
	}

	now := time.Now()
	submission.Score = &req.Score
	submission.Feedback = req.Feedback
	submission.GradedAt = &now

	if err := database.DB.Save(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to grade submission"})
	}

	return c.JSON(submission)
}

func ListAssignmentSubmissions(c *fiber.Ctx) error {
	assignmentID := c.Params("assignmentId")
	if _, err := uuid.Parse(assignmentID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID format"})
	}

	var submissions []models.Submission
	err := database.DB.Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at asc").
		Find(&submissions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}

	return c.JSON(submissions)
}
