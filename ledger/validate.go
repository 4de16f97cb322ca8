package ledger

import "errors"

// Epsilon absorbs floating-point rounding when comparing a proposed payment
// against the outstanding due amount.
const Epsilon = 0.01

var (
	ErrInvalidAmount   = errors.New("payment amount must be a positive number")
	ErrExceedsDue      = errors.New("payment amount exceeds the outstanding due balance")
	ErrStudentNotFound = errors.New("student not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// ParseAmount normalizes a raw amount as received on the wire. It rejects
// anything that is not a strictly positive finite number.
func ParseAmount(raw interface{}) (float64, error) {
	amount, ok := toNumber(raw)
	if !ok || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// ValidateAmount decides whether a proposed payment may be applied against
// the student's current ledger. A zero TotalFee marks a fee-waived
// enrollment: any positive amount is accepted without a due check.
func ValidateAmount(raw interface{}, snap Snapshot) (float64, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}
	if snap.TotalFee == 0 {
		return amount, nil
	}
	if amount > snap.FeeDue+Epsilon {
		return 0, ErrExceedsDue
	}
	return amount, nil
}

// validateDelta checks the incremental change an amendment applies against
// the due amount. Reductions and no-ops are always within balance.
func validateDelta(delta float64, snap Snapshot) error {
	if delta <= 0 || snap.TotalFee == 0 {
		return nil
	}
	if delta > snap.FeeDue+Epsilon {
		return ErrExceedsDue
	}
	return nil
}
