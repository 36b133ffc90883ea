package payment

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/payment-service/internal"
)

// PaymentDTO is the create/update request payload.
type PaymentDTO struct {
	CustomerID      string   `json:"customerId"`
	Amount          *float64 `json:"amount"`
	PaymentMethodID string   `json:"paymentMethodId"`
}

// Validate checks payload completeness; business thresholds are the
// validation chain's job, not the DTO's.
func (d *PaymentDTO) Validate() *errors.AppError {
	var missing []string

	if strings.TrimSpace(d.CustomerID) == "" {
		missing = append(missing, "customerId is required")
	}
	if d.Amount == nil {
		missing = append(missing, "amount is required")
	}
	if strings.TrimSpace(d.PaymentMethodID) == "" {
		missing = append(missing, "paymentMethodId is required")
	}

	if len(missing) > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("Payload misses information: %s", strings.Join(missing, ", ")),
			errors.ErrCodeValidationFailed,
		)
	}
	return nil
}
