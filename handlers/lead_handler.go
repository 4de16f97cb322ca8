package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/anjiri1684/institute_backoffice/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateLeadRequest struct {
	FullName           string  `json:"full_name" validate:"required,min=3"`
	Phone              string  `json:"phone" validate:"required,min=7"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	Source             string  `json:"source" validate:"omitempty,oneof=walk_in website referral social_media phone_inquiry"`
	InterestedCourseID *string `json:"interested_course_id,omitempty" validate:"omitempty,uuid"`
	Notes              *string `json:"notes,omitempty"`
	FollowUpDate       *string `json:"follow_up_date,omitempty"`
}

func CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lead := models.Lead{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
	}
	if req.Source != "" {
		lead.Source = req.Source
	}
	if req.InterestedCourseID != nil {
		courseID, _ := uuid.Parse(*req.InterestedCourseID)
		lead.InterestedCourseID = &courseID
	}
	if req.FollowUpDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.FollowUpDate); err == nil {
			lead.FollowUpDate = &parsed
		}
	}

	if err := database.DB.Create(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lead"})
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

func ListLeads(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Lead{}).Preload("InterestedCourse").Preload("AssignedTo")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		query = query.Where("assigned_to_id = ?", assignedTo)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("full_name ILIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	var total int64
	query.Count(&total)

	var leads []models.Lead
	err := query.Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&leads).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leads"})
	}

	return c.JSON(fiber.Map{"leads": leads, "total": total, "page": page})
}

type UpdateLeadRequest struct {
	FullName           *string `json:"full_name"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	Status             *string `json:"status" validate:"omitempty,oneof=new contacted qualified lost"`
	Notes              *string `json:"notes"`
	InterestedCourseID *string `json:"interested_course_id" validate:"omitempty,uuid"`
	FollowUpDate       *string `json:"follow_up_date"`
}

func UpdateLead(c *fiber.Ctx) error {
	leadID := c.Params("leadId")

	var lead models.Lead
	if err := database.DB.First(&lead, "id = ?", leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lead not found"})
	}
	if lead.Status == "converted" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Converted leads cannot be edited"})
	}

	var req UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FullName != nil {
		lead.FullName = *req.FullName
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Email != nil {
		lead.Email = req.Email
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.Notes != nil {
		lead.Notes = req.Notes
	}
	if req.InterestedCourseID != nil {
		courseID, _ := uuid.Parse(*req.InterestedCourseID)
		lead.InterestedCourseID = &courseID
	}
	if req.FollowUpDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.FollowUpDate); err == nil {
			lead.FollowUpDate = &parsed
		}
	}

	if err := database.DB.Save(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update lead"})
	}

	return c.JSON(lead)
}

type AssignLeadRequest struct {
	AssignedToID string `json:"assigned_to_id" validate:"required,uuid"`
}

func AssignLead(c *fiber.Ctx) error {
	leadID := c.Params("leadId")

	var req AssignLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var lead models.Lead
	if err := database.DB.First(&lead, "id = ?", leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lead not found"})
	}

	var counselor models.User
	if err := database.DB.First(&counselor, "id = ?", req.AssignedToID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignee not found"})
	}

	assigneeID := counselor.ID
	lead.AssignedToID = &assigneeID
	if lead.Status == "new" {
		lead.Status = "contacted"
	}
	if err := database.DB.Save(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign lead"})
	}

	go notifications.SendEmail(counselor.FullName, counselor.Email, "New Lead Assigned",
		"<h1>Lead Assigned</h1><p>A new lead has been assigned to you: "+lead.FullName+" ("+lead.Phone+").</p>")

	return c.JSON(lead)
}

type ConvertLeadRequest struct {
	CourseID *string     `json:"course_id,omitempty" validate:"omitempty,uuid"`
	BatchID  *string     `json:"batch_id,omitempty" validate:"omitempty,uuid"`
	TotalFee interface{} `json:"total_fee,omitempty"`
}

// ConvertLead promotes a qualified lead into an enrolled student. The new
// student's total fee defaults to the course fee unless overridden; the lead
// row and the new student row move together in one transaction.
func ConvertLead(c *fiber.Ctx) error {
	leadID := c.Params("leadId")

	var req ConvertLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var lead models.Lead
		if err := tx.First(&lead, "id = ?", leadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("lead not found")
			}
			return err
		}
		if lead.Status == "converted" {
			return errors.New("lead already converted")
		}

		courseID := lead.InterestedCourseID
		if req.CourseID != nil {
			parsed, _ := uuid.Parse(*req.CourseID)
			courseID = &parsed
		}
		if courseID == nil {
			return errors.New("no course selected for enrollment")
		}

		var course models.Course
		if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
			return errors.New("course not found")
		}

		totalFee := course.Fee
		if req.TotalFee != nil {
			if n, ok := asNumber(req.TotalFee); ok && n >= 0 {
				totalFee = n
			}
		}

		leadRef := lead.ID
		student = models.Student{
			FullName:       lead.FullName,
			Phone:          lead.Phone,
			Email:          lead.Email,
			CourseID:       courseID,
			LeadID:         &leadRef,
			TotalFee:       totalFee,
			FeeDue:         totalFee,
			EnrollmentDate: time.Now(),
		}

		if req.BatchID != nil {
			batchID, _ := uuid.Parse(*req.BatchID)
			var batch models.Batch
			if err := tx.First(&batch, "id = ?", batchID).Error; err != nil {
				return errors.New("batch not found")
			}
			if !batch.HasCapacity() {
				return errors.New("batch is full")
			}
			batch.CurrentStudents++
			if err := tx.Save(&batch).Error; err != nil {
				return err
			}
			student.BatchID = &batchID
		}

		if err := tx.Create(&student).Error; err != nil {
			return err
		}

		lead.Status = "converted"
		lead.ConvertedStudentID = &student.ID
		return tx.Save(&lead).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Lead converted successfully",
		"student": student,
	})
}

func asNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func DeleteLead(c *fiber.Ctx) error {
	leadID := c.Params("leadId")

	var lead models.Lead
	if err := database.DB.First(&lead, "id = ?", leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lead not found"})
	}
	if lead.Status == "converted" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Converted leads cannot be deleted"})
	}

	if err := database.DB.Delete(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete lead"})
	}

	return c.JSON(fiber.Map{"message": "Lead deleted successfully"})
}
