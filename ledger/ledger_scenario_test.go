package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These walk the ledger arithmetic through the payment lifecycles the
// back office actually sees: first collection, final collection, amount
// corrections, and deletes.

func TestLedger_FirstCollection(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeePaid: 0, FeeDue: 10000}

	amount, err := ValidateAmount(4000.0, snap)
	assert.NoError(t, err)

	next := applyDelta(snap, amount)
	assert.Equal(t, 4000.0, next.FeePaid)
	assert.Equal(t, 6000.0, next.FeeDue)
}

func TestLedger_FinalCollectionThenOverpayRejected(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeePaid: 4000, FeeDue: 6000}

	amount, err := ValidateAmount(6000.0, snap)
	assert.NoError(t, err)

	next := applyDelta(snap, amount)
	assert.Equal(t, 10000.0, next.FeePaid)
	assert.Equal(t, 0.0, next.FeeDue)

	// Fully collected: one more shilling must bounce.
	_, err = ValidateAmount(1.0, next)
	assert.ErrorIs(t, err, ErrExceedsDue)
}

func TestLedger_AmendPaymentUpwards(t *testing.T) {
	// Student {totalFee: 5000, feePaid: 2000}; an existing payment of 2000
	// is corrected to 2500, so only the 500 difference is checked and
	// applied.
	snap := Snapshot{TotalFee: 5000, FeePaid: 2000, FeeDue: 3000}
	delta := 2500.0 - 2000.0

	assert.NoError(t, validateDelta(delta, snap))

	next := applyDelta(snap, delta)
	assert.Equal(t, 2500.0, next.FeePaid)
	assert.Equal(t, 2500.0, next.FeeDue)
}

func TestLedger_AmendToSameAmountIsNoOp(t *testing.T) {
	snap := Snapshot{TotalFee: 5000, FeePaid: 2000, FeeDue: 3000}

	next := applyDelta(snap, 0)
	assert.Equal(t, snap, next)
}

func TestLedger_FeeWaivedEnrollmentClampsAtZero(t *testing.T) {
	snap := Snapshot{TotalFee: 0, FeePaid: 0, FeeDue: 0}

	amount, err := ValidateAmount(500.0, snap)
	assert.NoError(t, err)

	next := applyDelta(snap, amount)
	assert.Equal(t, 500.0, next.FeePaid)
	assert.Equal(t, 0.0, next.FeeDue)
}

func TestLedger_DeleteReversesContribution(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeePaid: 4000, FeeDue: 6000}

	next := applyDelta(snap, -4000)
	assert.Equal(t, 0.0, next.FeePaid)
	assert.Equal(t, 10000.0, next.FeeDue)
}

func TestLedger_DeleteNeverDrivesPaidNegative(t *testing.T) {
	// Reversing more than was ever recorded (drifted data) floors at zero.
	snap := Snapshot{TotalFee: 10000, FeePaid: 1000, FeeDue: 9000}

	next := applyDelta(snap, -2500)
	assert.Equal(t, 0.0, next.FeePaid)
	assert.Equal(t, 10000.0, next.FeeDue)
}

func TestLedger_PendingPaymentContributesNothing(t *testing.T) {
	assert.Equal(t, 0.0, contribution(4000, "pending"))
	assert.Equal(t, 0.0, contribution(4000, "failed"))
	assert.Equal(t, 4000.0, contribution(4000, "completed"))
}

func TestLedger_StatusFlipAppliesFullAmount(t *testing.T) {
	// A pending payment of 3000 completing later behaves like a fresh
	// collection of 3000.
	snap := Snapshot{TotalFee: 5000, FeePaid: 0, FeeDue: 5000}
	delta := contribution(3000, "completed") - contribution(3000, "pending")

	assert.NoError(t, validateDelta(delta, snap))

	next := applyDelta(snap, delta)
	assert.Equal(t, 3000.0, next.FeePaid)
	assert.Equal(t, 2000.0, next.FeeDue)
}

func TestLedger_DueInvariantHoldsAcrossRandomWalk(t *testing.T) {
	snap := Snapshot{TotalFee: 12000, FeePaid: 0, FeeDue: 12000}

	for _, delta := range []float64{3000, -1000, 5000, 2500, -500, 3000} {
		snap = applyDelta(snap, delta)
		assert.GreaterOrEqual(t, snap.FeePaid, 0.0)
		assert.GreaterOrEqual(t, snap.FeeDue, 0.0)

		expectedDue := snap.TotalFee - snap.FeePaid
		if expectedDue < 0 {
			expectedDue = 0
		}
		assert.Equal(t, expectedDue, snap.FeeDue)
	}
}
