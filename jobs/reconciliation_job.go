package jobs

import (
	"log"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/ledger"
)

// ReconcileLedgers resums every student's completed payments and repairs any
// fee_paid/fee_due drift left by historic non-transactional writes.
func ReconcileLedgers() {
	log.Println("Running job: ReconcileLedgers...")

	repaired, err := ledger.NewService(database.DB).ReconcileAll()
	if err != nil {
		log.Printf("Error reconciling ledgers: %v", err)
		return
	}

	if repaired == 0 {
		log.Println("All student ledgers consistent.")
		return
	}
	log.Printf("Repaired %d drifted student ledger(s).", repaired)
}
