package handlers

import (
	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateTrainerRequest struct {
	FullName       string  `json:"full_name" validate:"required,min=3"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	Phone          *string `json:"phone,omitempty"`
	Specialization string  `json:"specialization" validate:"required"`
	Bio            *string `json:"bio,omitempty"`
}

// CreateTrainer provisions the staff account and the trainer profile in one
// transaction.
func CreateTrainer(c *fiber.Ctx) error {
	var req CreateTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	var trainer models.Trainer
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			FullName: req.FullName,
			Email:    req.Email,
			Password: string(hashedPassword),
			Role:     "trainer",
			Phone:    req.Phone,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		trainer = models.Trainer{
			UserID:         user.ID,
			Specialization: req.Specialization,
			Bio:            req.Bio,
		}
		return tx.Create(&trainer).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create trainer"})
	}

	return c.Status(fiber.StatusCreated).JSON(trainer)
}

func ListTrainers(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Trainer{}).Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var trainers []models.Trainer
	if err := query.Find(&trainers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch trainers"})
	}

	return c.JSON(trainers)
}

func GetTrainer(c *fiber.Ctx) error {
	trainerID := c.Params("trainerId")
	if _, err := uuid.Parse(trainerID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trainer ID format"})
	}

	var trainer models.Trainer
	if err := database.DB.Preload("User").First(&trainer, "id = ?", trainerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	}

	var batches []models.Batch
	database.DB.Preload("Course").Where("trainer_id = ?", trainer.ID).Find(&batches)

	return c.JSON(fiber.Map{"trainer": trainer, "batches": batches})
}

type UpdateTrainerRequest struct {
	Specialization *string `json:"specialization"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func UpdateTrainer(c *fiber.Ctx) error {
	trainerID := c.Params("trainerId")

	var trainer models.Trainer
	if err := database.DB.First(&trainer, "id = ?", trainerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	}

	var req UpdateTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Specialization != nil {
		trainer.Specialization = *req.Specialization
	}
	if req.Bio != nil {
		trainer.Bio = req.Bio
	}
	if req.Status != nil {
		trainer.Status = *req.Status
	}

	if err := database.DB.Save(&trainer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update trainer"})
	}

	return c.JSON(trainer)
}
