package utils

import (
	"errors"

	"github.com/anjiri1684/alx_travel/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const txRefPrefix = "tx-"

// maxTxRefAttempts bounds the retry loop; a uuid collision is not expected.
const maxTxRefAttempts = 5

// GenerateUniqueTxRef returns a transaction reference not yet used by any payment.
func GenerateUniqueTxRef(tx *gorm.DB) (string, error) {
	for i := 0; i < maxTxRefAttempts; i++ {
		ref := txRefPrefix + uuid.NewString()

		var payment models.Payment
		err := tx.Where("transaction_id = ?", ref).First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ref, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not generate a unique transaction reference")
}
