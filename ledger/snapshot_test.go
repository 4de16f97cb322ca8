package ledger

import (
	"encoding/json"
	"testing"

	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/stretchr/testify/assert"
)

func TestReadSnapshot_SnakeCaseFields(t *testing.T) {
	snap := ReadSnapshot(map[string]interface{}{
		"total_fee": 10000.0,
		"fee_paid":  4000.0,
		"fee_due":   6000.0,
	})

	assert.Equal(t, 10000.0, snap.TotalFee)
	assert.Equal(t, 4000.0, snap.FeePaid)
	assert.Equal(t, 6000.0, snap.FeeDue)
}

func TestReadSnapshot_PrefersSnakeCaseOverAliases(t *testing.T) {
	// Records written across different eras can carry several spellings at
	// once; snake_case always wins.
	snap := ReadSnapshot(map[string]interface{}{
		"total_fee": 5000.0,
		"totalFee":  9999.0,
		"totalFees": 1.0,
		"feePaid":   2000.0,
		"amountDue": 3000.0,
	})

	assert.Equal(t, 5000.0, snap.TotalFee)
	assert.Equal(t, 2000.0, snap.FeePaid)
	assert.Equal(t, 3000.0, snap.FeeDue)
}

func TestReadSnapshot_WireStringsAndJSONNumbers(t *testing.T) {
	// The observed wire format sends decimals as strings.
	snap := ReadSnapshot(map[string]interface{}{
		"totalFee":   "7500.50",
		"amountPaid": json.Number("2500.25"),
	})

	assert.Equal(t, 7500.50, snap.TotalFee)
	assert.Equal(t, 2500.25, snap.FeePaid)
	assert.Equal(t, 5000.25, snap.FeeDue)
}

func TestReadSnapshot_UnparseableValuesCountAsZero(t *testing.T) {
	snap := ReadSnapshot(map[string]interface{}{
		"total_fee": "abc",
		"fee_paid":  nil,
	})

	assert.Equal(t, 0.0, snap.TotalFee)
	assert.Equal(t, 0.0, snap.FeePaid)
	assert.Equal(t, 0.0, snap.FeeDue)
}

func TestReadSnapshot_DerivesDueWhenAbsent(t *testing.T) {
	snap := ReadSnapshot(map[string]interface{}{
		"total_fee": 10000.0,
		"fee_paid":  4000.0,
	})

	assert.Equal(t, 6000.0, snap.FeeDue)
}

func TestReadSnapshot_NegativeStoredDueIsRecomputed(t *testing.T) {
	// Stale data can carry a negative due; never trust it.
	snap := ReadSnapshot(map[string]interface{}{
		"total_fee": 5000.0,
		"fee_paid":  2000.0,
		"fee_due":   -500.0,
	})

	assert.Equal(t, 3000.0, snap.FeeDue)
}

func TestReadSnapshot_OverpaidClampsDueToZero(t *testing.T) {
	snap := ReadSnapshot(map[string]interface{}{
		"total_fee": 1000.0,
		"fee_paid":  1500.0,
	})

	assert.Equal(t, 0.0, snap.FeeDue)
	assert.GreaterOrEqual(t, snap.FeePaid, 0.0)
}

func TestReadSnapshot_EmptyRecord(t *testing.T) {
	snap := ReadSnapshot(map[string]interface{}{})

	assert.Equal(t, Snapshot{}, snap)
}

func TestStudentSnapshot_RederivesDue(t *testing.T) {
	student := &models.Student{TotalFee: 5000, FeePaid: 2000, FeeDue: 9999}

	snap := StudentSnapshot(student)

	assert.Equal(t, 3000.0, snap.FeeDue)
}
