package ledger

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/anjiri1684/institute_backoffice/models"
)

// Snapshot is the canonical view of a student's fee ledger.
type Snapshot struct {
	TotalFee float64
	FeePaid  float64
	FeeDue   float64
}

// Stored and imported records spell the ledger fields three different ways
// depending on which era of the system wrote them. Preference order is
// snake_case, then camelCase, then the legacy alias.
var (
	totalFeeKeys = []string{"total_fee", "totalFee", "totalFees"}
	feePaidKeys  = []string{"fee_paid", "feePaid", "amountPaid"}
	feeDueKeys   = []string{"fee_due", "feeDue", "amountDue"}
)

// ReadSnapshot resolves a student-like record with unknown field naming into
// a canonical Snapshot. Missing or unparseable values count as zero. An
// explicitly stored due amount wins over the derived one unless it is
// negative, in which case it is recomputed from max(0, total-paid).
func ReadSnapshot(record map[string]interface{}) Snapshot {
	totalFee := firstNumber(record, totalFeeKeys)
	feePaid := firstNumber(record, feePaidKeys)

	feeDue, found := lookupNumber(record, feeDueKeys)
	if !found || feeDue < 0 {
		feeDue = totalFee - feePaid
	}
	if feeDue < 0 {
		feeDue = 0
	}
	if totalFee < 0 {
		totalFee = 0
	}
	if feePaid < 0 {
		feePaid = 0
	}

	return Snapshot{TotalFee: totalFee, FeePaid: feePaid, FeeDue: feeDue}
}

// StudentSnapshot builds a Snapshot from a persisted student row, rederiving
// the due amount so a stale stored value can never leak out.
func StudentSnapshot(student *models.Student) Snapshot {
	return applyDelta(Snapshot{TotalFee: student.TotalFee, FeePaid: student.FeePaid}, 0)
}

// applyDelta shifts the paid amount by delta and rederives the due amount,
// flooring both at zero.
func applyDelta(snap Snapshot, delta float64) Snapshot {
	paid := snap.FeePaid + delta
	if paid < 0 {
		paid = 0
	}
	due := snap.TotalFee - paid
	if due < 0 {
		due = 0
	}
	return Snapshot{TotalFee: snap.TotalFee, FeePaid: paid, FeeDue: due}
}

func firstNumber(record map[string]interface{}, keys []string) float64 {
	n, _ := lookupNumber(record, keys)
	return n
}

func lookupNumber(record map[string]interface{}, keys []string) (float64, bool) {
	for _, key := range keys {
		raw, ok := record[key]
		if !ok || raw == nil {
			continue
		}
		if n, ok := toNumber(raw); ok {
			return n, true
		}
		// Present but unparseable counts as zero, not as "keep scanning";
		// a later alias must not override the preferred spelling.
		return 0, true
	}
	return 0, false
}

func toNumber(raw interface{}) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
