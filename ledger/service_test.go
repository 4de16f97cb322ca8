package ledger

import (
	"testing"
	"time"

	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// dryRunDB builds SQL without a database and records every generated query.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	assert.NoError(t, err)

	var queries []string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		queries = append(queries, tx.Statement.SQL.String())
	})
	assert.NoError(t, err)

	return db, &queries
}

func TestService_StudentLookupTakesRowLock(t *testing.T) {
	db, queries := dryRunDB(t)
	svc := NewService(db)

	_, err := svc.lockStudent(db, uuid.New())
	assert.NoError(t, err)

	assert.Len(t, *queries, 1)
	assert.Contains(t, (*queries)[0], "FOR UPDATE")
}

func TestService_PaymentLookupTakesRowLock(t *testing.T) {
	// Amends and deletes compute their ledger delta from the payment row
	// they read; without the lock, two concurrent edits would both read the
	// original amount and apply deltas off stale state.
	db, queries := dryRunDB(t)
	svc := NewService(db)

	_, err := svc.lockPayment(db, uuid.New())
	assert.NoError(t, err)

	assert.Len(t, *queries, 1)
	assert.Contains(t, (*queries)[0], "FOR UPDATE")
}

func TestOpeningPayment_BacksImportedPaidAmount(t *testing.T) {
	enrolled := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	student := &models.Student{
		ID:             uuid.New(),
		TotalFee:       10000,
		FeePaid:        3500,
		FeeDue:         6500,
		EnrollmentDate: enrolled,
	}

	payment := openingPayment(student, "RCP-20260801-000001")

	assert.Equal(t, student.ID, payment.StudentID)
	assert.Equal(t, enrolled, payment.PaymentDate)
	// The row must count toward the completed-payment sum, or the nightly
	// resummation would reset the imported balance to zero.
	assert.Equal(t, student.FeePaid, contribution(payment.Amount, payment.Status))
}

func TestAdjustedTotal_RederivesDueFromPaid(t *testing.T) {
	// Student paid 3000 against 5000; the total is revised up to 8000, so
	// the due balance becomes 8000 - 3000.
	snap := ReadSnapshot(map[string]interface{}{"total_fee": 8000.0, "fee_paid": 3000.0})
	assert.Equal(t, Snapshot{TotalFee: 8000, FeePaid: 3000, FeeDue: 5000}, snap)

	// Revising the total below what is already paid clamps due at zero.
	snap = ReadSnapshot(map[string]interface{}{"total_fee": 2000.0, "fee_paid": 3000.0})
	assert.Equal(t, 0.0, snap.FeeDue)
	assert.Equal(t, 3000.0, snap.FeePaid)
}
