package handlers

import (
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBatchRequest struct {
	Name        string  `json:"name" validate:"required,min=3"`
	CourseID    string  `json:"course_id" validate:"required,uuid"`
	TrainerID   *string `json:"trainer_id,omitempty" validate:"omitempty,uuid"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
	Schedule    *string `json:"schedule,omitempty"`
	MaxStudents int     `json:"max_students" validate:"omitempty,gte=1"`
}

func CreateBatch(c *fiber.Ctx) error {
	var req CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date"})
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date"})
	}
	if !endDate.After(startDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must be after start date"})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	batch := models.Batch{
		Name:      req.Name,
		CourseID:  courseID,
		StartDate: startDate,
		EndDate:   endDate,
		Schedule:  req.Schedule,
	}
	if req.MaxStudents > 0 {
		batch.MaxStudents = req.MaxStudents
	}
	if req.TrainerID != nil {
		trainerID, _ := uuid.Parse(*req.TrainerID)
		var trainer models.Trainer
		if err := database.DB.First(&trainer, "id = ?", trainerID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
		}
		batch.TrainerID = &trainerID
	}

	if err := database.DB.Create(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create batch"})
	}

	return c.Status(fiber.StatusCreated).JSON(batch)
}

func ListBatches(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Batch{}).Preload("Course").Preload("Trainer.User")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if trainerID := c.Query("trainer_id"); trainerID != "" {
		query = query.Where("trainer_id = ?", trainerID)
	}

	var batches []models.Batch
	if err := query.Order("start_date desc").Find(&batches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch batches"})
	}

	return c.JSON(batches)
}

func GetBatch(c *fiber.Ctx) error {
	batchID := c.Params("batchId")

	var batch models.Batch
	err := database.DB.Preload("Course").Preload("Trainer.User").First(&batch, "id = ?", batchID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	return c.JSON(fiber.Map{
		"batch":            batch,
		"progress_percent": batch.ProgressPercent(time.Now()),
	})
}

type UpdateBatchRequest struct {
	Name        *string `json:"name"`
	TrainerID   *string `json:"trainer_id" validate:"omitempty,uuid"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Schedule    *string `json:"schedule"`
	MaxStudents *int    `json:"max_students" validate:"omitempty,gte=1"`
	Status      *string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
}

func UpdateBatch(c *fiber.Ctx) error {
	batchID := c.Params("batchId")

	var batch models.Batch
	if err := database.DB.First(&batch, "id = ?", batchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	var req UpdateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Name != nil {
		batch.Name = *req.Name
	}
	if req.TrainerID != nil {
		trainerID, _ := uuid.Parse(*req.TrainerID)
		batch.TrainerID = &trainerID
	}
	if req.StartDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.StartDate); err == nil {
			batch.StartDate = parsed
		}
	}
	if req.EndDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.EndDate); err == nil {
			batch.EndDate = parsed
		}
	}
	if req.Schedule != nil {
		batch.Schedule = req.Schedule
	}
	if req.MaxStudents != nil {
		batch.MaxStudents = *req.MaxStudents
	}
	if req.Status != nil {
		batch.Status = *req.Status
	}

	if err := database.DB.Save(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update batch"})
	}

	return c.JSON(batch)
}

func DeleteBatch(c *fiber.Ctx) error {
	batchID := c.Params("batchId")

	var enrolled int64
	database.DB.Model(&models.Student{}).Where("batch_id = ?", batchID).Count(&enrolled)
	if enrolled > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Batch has enrolled students"})
	}

	result := database.DB.Delete(&models.Batch{}, "id = ?", batchID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete batch"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	return c.JSON(fiber.Map{"message": "Batch deleted successfully"})
}
