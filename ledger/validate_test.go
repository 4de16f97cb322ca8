package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAmount_AcceptsExactDue(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeePaid: 4000, FeeDue: 6000}

	amount, err := ValidateAmount(6000.0, snap)

	assert.NoError(t, err)
	assert.Equal(t, 6000.0, amount)
}

func TestValidateAmount_RejectsOverDueBeyondEpsilon(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeePaid: 4000, FeeDue: 6000}

	_, err := ValidateAmount(6000.02, snap)

	assert.ErrorIs(t, err, ErrExceedsDue)
}

func TestValidateAmount_ToleratesRoundingWithinEpsilon(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeePaid: 4000, FeeDue: 6000}

	amount, err := ValidateAmount(6000.009, snap)

	assert.NoError(t, err)
	assert.Equal(t, 6000.009, amount)
}

func TestValidateAmount_RejectsNonPositive(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeeDue: 10000}

	for _, raw := range []interface{}{-50.0, 0.0, "-50"} {
		_, err := ValidateAmount(raw, snap)
		assert.ErrorIs(t, err, ErrInvalidAmount, "raw=%v", raw)
	}
}

func TestValidateAmount_RejectsUnparseable(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeeDue: 10000}

	for _, raw := range []interface{}{"abc", "", nil, true} {
		_, err := ValidateAmount(raw, snap)
		assert.ErrorIs(t, err, ErrInvalidAmount, "raw=%v", raw)
	}
}

func TestValidateAmount_ZeroTotalFeeBypassesDueCheck(t *testing.T) {
	// Fee-waived enrollment: any positive amount goes through even though
	// nothing is due.
	snap := Snapshot{TotalFee: 0, FeePaid: 0, FeeDue: 0}

	amount, err := ValidateAmount(500.0, snap)

	assert.NoError(t, err)
	assert.Equal(t, 500.0, amount)
}

func TestValidateAmount_AcceptsStringAmount(t *testing.T) {
	snap := Snapshot{TotalFee: 10000, FeeDue: 10000}

	amount, err := ValidateAmount("2500.50", snap)

	assert.NoError(t, err)
	assert.Equal(t, 2500.50, amount)
}

func TestValidateDelta_PositiveDeltaCheckedAgainstDue(t *testing.T) {
	snap := Snapshot{TotalFee: 5000, FeePaid: 2000, FeeDue: 3000}

	assert.NoError(t, validateDelta(500, snap))
	assert.NoError(t, validateDelta(3000, snap))
	assert.ErrorIs(t, validateDelta(3000.02, snap), ErrExceedsDue)
}

func TestValidateDelta_ReductionsAlwaysPass(t *testing.T) {
	snap := Snapshot{TotalFee: 5000, FeePaid: 5000, FeeDue: 0}

	assert.NoError(t, validateDelta(-2000, snap))
	assert.NoError(t, validateDelta(0, snap))
}
