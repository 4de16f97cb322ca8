package handlers

import (
	"errors"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCourseRequest struct {
	Name          string  `json:"name" validate:"required,min=3"`
	Code          string  `json:"code" validate:"required,min=2,max=20"`
	Description   *string `json:"description,omitempty"`
	Fee           float64 `json:"fee" validate:"gte=0"`
	DurationWeeks int     `json:"duration_weeks" validate:"gte=0"`
}

func CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		Name:          req.Name,
		Code:          req.Code,
		Description:   req.Description,
		Fee:           req.Fee,
		DurationWeeks: req.DurationWeeks,
		IsActive:      true,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Course code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

func ListCourses(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Course{})
	if c.Query("active_only") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var courses []models.Course
	if err := query.Order("name asc").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	return c.JSON(course)
}

type UpdateCourseRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Fee           *float64 `json:"fee" validate:"omitempty,gte=0"`
	DurationWeeks *int     `json:"duration_weeks" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Fee != nil {
		// Changing the course fee only affects future enrollments; existing
		// student ledgers keep the fee agreed at enrollment.
		course.Fee = *req.Fee
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = *req.DurationWeeks
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var enrolled int64
	database.DB.Model(&models.Student{}).Where("course_id = ?", courseID).Count(&enrolled)
	if enrolled > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Course has enrolled students; deactivate it instead"})
	}

	result := database.DB.Delete(&models.Course{}, "id = ?", courseID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}
