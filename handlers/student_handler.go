package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/ledger"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateStudentRequest struct {
	FullName       string  `json:"full_name" validate:"required,min=3"`
	Phone          string  `json:"phone" validate:"required,min=7"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
	CourseID       *string `json:"course_id,omitempty" validate:"omitempty,uuid"`
	BatchID        *string `json:"batch_id,omitempty" validate:"omitempty,uuid"`
	EnrollmentDate *string `json:"enrollment_date,omitempty"`
}

func CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Ledger fields arrive under any of the historical spellings
	// (total_fee/totalFee/totalFees etc), so they are read off the raw body
	// rather than the typed request.
	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	snap := ledger.ReadSnapshot(raw)

	student := models.Student{
		FullName:       req.FullName,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		TotalFee:       snap.TotalFee,
		FeePaid:        snap.FeePaid,
		FeeDue:         snap.FeeDue,
		EnrollmentDate: time.Now(),
	}

	if req.EnrollmentDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.EnrollmentDate); err == nil {
			student.EnrollmentDate = parsed
		}
	}

	if req.CourseID != nil {
		courseID, _ := uuid.Parse(*req.CourseID)
		var course models.Course
		if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		student.CourseID = &courseID

		// The course fee is the default charge when the caller sent none.
		if !hasLedgerField(raw) {
			fresh := ledger.ReadSnapshot(map[string]interface{}{"total_fee": course.Fee})
			student.TotalFee = fresh.TotalFee
			student.FeeDue = fresh.FeeDue
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
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

		// An imported paid amount needs a completed payment row behind it,
		// or the nightly resummation would zero the opening balance.
		return ledgerService().RecordOpeningBalance(tx, &student)
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func hasLedgerField(raw map[string]interface{}) bool {
	for _, key := range []string{"total_fee", "totalFee", "totalFees"} {
		if _, ok := raw[key]; ok {
			return true
		}
	}
	return false
}

func ListStudents(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Student{}).Preload("Course").Preload("Batch")

	if batchID := c.Query("batch_id"); batchID != "" {
		query = query.Where("batch_id = ?", batchID)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("full_name ILIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if c.Query("due_only") == "true" {
		query = query.Where("fee_due > 0")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	var total int64
	query.Count(&total)

	var students []models.Student
	err := query.Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&students).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{"students": students, "total": total, "page": page})
}

func GetStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	if _, err := uuid.Parse(studentID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID format"})
	}

	var student models.Student
	err := database.DB.Preload("Course").Preload("Batch").First(&student, "id = ?", studentID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(student)
}

type UpdateStudentRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	BatchID  *string `json:"batch_id" validate:"omitempty,uuid"`
	Status   *string `json:"status" validate:"omitempty,oneof=active completed dropped"`
}

func UpdateStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID format"})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Only the named columns are written. A full-row Save would carry this
	// handler's stale fee_paid/fee_due over whatever a concurrent payment
	// just wrote; ledger columns move only through the ledger service.
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if req.BatchID != nil {
		newBatchID, _ := uuid.Parse(*req.BatchID)
		if student.BatchID == nil || *student.BatchID != newBatchID {
			err := database.DB.Transaction(func(tx *gorm.DB) error {
				var batch models.Batch
				if err := tx.First(&batch, "id = ?", newBatchID).Error; err != nil {
					return errors.New("batch not found")
				}
				if !batch.HasCapacity() {
					return errors.New("batch is full")
				}
				batch.CurrentStudents++
				if err := tx.Save(&batch).Error; err != nil {
					return err
				}
				if student.BatchID != nil {
					if err := releaseBatchSeat(tx, *student.BatchID); err != nil {
						return err
					}
				}
				return tx.Model(&student).Update("batch_id", newBatchID).Error
			})
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&student).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
		}
	}

	// A revised total fee may arrive under any historical spelling. FeePaid
	// is never writable here; the recompute locks the row and rederives the
	// due amount from whatever has actually been paid.
	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err == nil && hasLedgerField(raw) {
		if _, err := ledgerService().AdjustTotalFee(studentID, firstPresent(raw, "total_fee", "totalFee", "totalFees")); err != nil {
			return ledgerError(c, err)
		}
	}

	if err := database.DB.Preload("Course").Preload("Batch").First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(student)
}

func firstPresent(raw map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			return v
		}
	}
	return nil
}

func DeleteStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if student.BatchID != nil {
			if err := releaseBatchSeat(tx, *student.BatchID); err != nil {
				return err
			}
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

// releaseBatchSeat gives an enrolled seat back when a student leaves or
// moves batches. The count never goes below zero.
func releaseBatchSeat(tx *gorm.DB, batchID uuid.UUID) error {
	return tx.Model(&models.Batch{}).
		Where("id = ? AND current_students > 0", batchID).
		UpdateColumn("current_students", gorm.Expr("current_students - 1")).Error
}
