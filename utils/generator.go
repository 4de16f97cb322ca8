package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/anjiri1684/institute_backoffice/models"
	"gorm.io/gorm"
)

const receiptDigits = 6

// GenerateReceiptNumber produces a receipt number like RCP-20260901-483920
// that is unique across the payments table.
func GenerateReceiptNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	datePart := time.Now().Format("20060102")

	for {
		suffix := seededRand.Intn(1000000)
		number := fmt.Sprintf("RCP-%s-%0*d", datePart, receiptDigits, suffix)

		var payment models.Payment
		err := tx.Where("receipt_number = ?", number).First(&payment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
