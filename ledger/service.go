package ledger

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/anjiri1684/institute_backoffice/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service applies payment mutations to the owning student's ledger. Every
// mutation runs as one transaction that row-locks the student, so two
// collectors recording payments for the same student cannot race on the
// read-modify-write of fee_paid/fee_due.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type RecordPaymentInput struct {
	StudentID            uuid.UUID
	Amount               interface{}
	PaymentDate          time.Time
	PaymentMethod        string
	Status               string
	TransactionReference *string
	Notes                *string
	RecordedByID         *uuid.UUID
}

type AmendPaymentInput struct {
	Amount               interface{}
	PaymentDate          *time.Time
	PaymentMethod        *string
	Status               *string
	TransactionReference *string
	Notes                *string
}

// contribution is what a payment row adds to fee_paid. Pending and failed
// payments are stored but do not touch the ledger until they complete.
func contribution(amount float64, status string) float64 {
	if status == models.PaymentCompleted {
		return amount
	}
	return 0
}

func (s *Service) lockStudent(tx *gorm.DB, studentID uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&student, "id = ?", studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// lockPayment row-locks the payment being amended or removed. Without the
// lock, two concurrent edits would both read the original amount and compute
// their deltas from it, drifting fee_paid away from the payment history.
func (s *Service) lockPayment(tx *gorm.DB, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *Service) saveLedger(tx *gorm.DB, student *models.Student, next Snapshot) error {
	student.FeePaid = next.FeePaid
	student.FeeDue = next.FeeDue
	return tx.Save(student).Error
}

// RecordPayment validates the proposed amount against the student's current
// due balance and persists the payment row together with the updated ledger.
func (s *Service) RecordPayment(in RecordPaymentInput) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		student, err := s.lockStudent(tx, in.StudentID)
		if err != nil {
			return err
		}

		snap := StudentSnapshot(student)
		amount, err := ValidateAmount(in.Amount, snap)
		if err != nil {
			return err
		}

		receiptNumber, err := utils.GenerateReceiptNumber(tx)
		if err != nil {
			return err
		}

		status := in.Status
		if status == "" {
			status = models.PaymentCompleted
		}

		payment = models.Payment{
			StudentID:            in.StudentID,
			Amount:               amount,
			PaymentDate:          in.PaymentDate,
			PaymentMethod:        in.PaymentMethod,
			Status:               status,
			TransactionReference: in.TransactionReference,
			Notes:                in.Notes,
			ReceiptNumber:        receiptNumber,
			RecordedByID:         in.RecordedByID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		delta := contribution(amount, status)
		if delta == 0 {
			return nil
		}
		return s.saveLedger(tx, student, applyDelta(snap, delta))
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// AmendPayment edits an existing payment. The due check applies to the
// incremental difference between the new and original contribution, not the
// new amount in isolation; a zero delta skips the student write entirely.
func (s *Service) AmendPayment(paymentID uuid.UUID, in AmendPaymentInput) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockPayment(tx, paymentID)
		if err != nil {
			return err
		}
		payment = *locked

		student, err := s.lockStudent(tx, payment.StudentID)
		if err != nil {
			return err
		}

		newAmount := payment.Amount
		if in.Amount != nil {
			parsed, err := ParseAmount(in.Amount)
			if err != nil {
				return err
			}
			newAmount = parsed
		}
		newStatus := payment.Status
		if in.Status != nil {
			newStatus = *in.Status
		}

		snap := StudentSnapshot(student)
		delta := contribution(newAmount, newStatus) - contribution(payment.Amount, payment.Status)
		if err := validateDelta(delta, snap); err != nil {
			return err
		}

		payment.Amount = newAmount
		payment.Status = newStatus
		if in.PaymentDate != nil {
			payment.PaymentDate = *in.PaymentDate
		}
		if in.PaymentMethod != nil {
			payment.PaymentMethod = *in.PaymentMethod
		}
		if in.TransactionReference != nil {
			payment.TransactionReference = in.TransactionReference
		}
		if in.Notes != nil {
			payment.Notes = in.Notes
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if delta == 0 {
			return nil
		}
		return s.saveLedger(tx, student, applyDelta(snap, delta))
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// RemovePayment deletes a payment and reverses its ledger contribution in
// the same transaction.
func (s *Service) RemovePayment(paymentID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		payment, err := s.lockPayment(tx, paymentID)
		if err != nil {
			return err
		}

		student, err := s.lockStudent(tx, payment.StudentID)
		if err != nil {
			return err
		}

		if err := tx.Delete(payment).Error; err != nil {
			return err
		}

		delta := -contribution(payment.Amount, payment.Status)
		if delta == 0 {
			return nil
		}
		snap := StudentSnapshot(student)
		return s.saveLedger(tx, student, applyDelta(snap, delta))
	})
}

// AdjustTotalFee revises a student's total fee and rederives the due amount
// from the paid total while the row is locked, so a concurrent payment can
// never be clobbered by the recompute. The revised total may arrive under
// any historical spelling, so it is passed raw.
func (s *Service) AdjustTotalFee(studentID uuid.UUID, rawTotal interface{}) (*models.Student, error) {
	var student models.Student
	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockStudent(tx, studentID)
		if err != nil {
			return err
		}

		snap := ReadSnapshot(map[string]interface{}{
			"total_fee": rawTotal,
			"fee_paid":  locked.FeePaid,
		})
		locked.TotalFee = snap.TotalFee
		if err := s.saveLedger(tx, locked, snap); err != nil {
			return err
		}
		student = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// openingPayment backs an imported fee_paid amount with a completed payment
// row, so resumming the payment history yields the stored ledger instead of
// zeroing the opening balance.
func openingPayment(student *models.Student, receiptNumber string) models.Payment {
	notes := "Opening balance carried over at enrollment"
	return models.Payment{
		StudentID:     student.ID,
		Amount:        student.FeePaid,
		PaymentDate:   student.EnrollmentDate,
		PaymentMethod: "other",
		Status:        models.PaymentCompleted,
		Notes:         &notes,
		ReceiptNumber: receiptNumber,
	}
}

// RecordOpeningBalance writes the synthetic payment behind a student created
// with a non-zero paid amount. Runs inside the caller's enrollment
// transaction; a zero opening balance writes nothing.
func (s *Service) RecordOpeningBalance(tx *gorm.DB, student *models.Student) error {
	if student.FeePaid <= 0 {
		return nil
	}

	receiptNumber, err := utils.GenerateReceiptNumber(tx)
	if err != nil {
		return err
	}
	payment := openingPayment(student, receiptNumber)
	return tx.Create(&payment).Error
}

// ReconcileStudent resums the student's completed payments and repairs
// fee_paid/fee_due if they have drifted from the payment history. Returns
// true when a repair was written.
func (s *Service) ReconcileStudent(studentID uuid.UUID) (bool, error) {
	repaired := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		student, err := s.lockStudent(tx, studentID)
		if err != nil {
			return err
		}

		var total float64
		err = tx.Model(&models.Payment{}).
			Where("student_id = ? AND status = ?", studentID, models.PaymentCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error
		if err != nil {
			return err
		}

		next := applyDelta(Snapshot{TotalFee: student.TotalFee, FeePaid: total}, 0)
		if math.Abs(student.FeePaid-next.FeePaid) < Epsilon && math.Abs(student.FeeDue-next.FeeDue) < Epsilon {
			return nil
		}

		log.Printf("Ledger drift for student %s: fee_paid %.2f -> %.2f, fee_due %.2f -> %.2f",
			studentID, student.FeePaid, next.FeePaid, student.FeeDue, next.FeeDue)
		repaired = true
		return s.saveLedger(tx, student, next)
	})
	return repaired, err
}

// ReconcileAll runs ReconcileStudent over every student and reports how many
// ledgers needed repair.
func (s *Service) ReconcileAll() (int, error) {
	var studentIDs []uuid.UUID
	if err := s.db.Model(&models.Student{}).Pluck("id", &studentIDs).Error; err != nil {
		return 0, err
	}

	repairedCount := 0
	for _, id := range studentIDs {
		repaired, err := s.ReconcileStudent(id)
		if err != nil {
			log.Printf("🔥 Failed to reconcile ledger for student %s: %v", id, err)
			continue
		}
		if repaired {
			repairedCount++
		}
	}
	return repairedCount, nil
}
