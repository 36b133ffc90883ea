package paymentmethod

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/payment-service/internal"
	pmmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/paymentmethod"
)

type PaymentMethodDTO struct {
	CustomerID  string `json:"customerId"`
	PaymentName string `json:"paymentName"`
	PaymentType string `json:"paymentType"`

	CardHolderName  *string `json:"cardHolderName,omitempty"`
	CardNumber      *string `json:"cardNumber,omitempty"`
	ExpirationMonth *int    `json:"expirationMonth,omitempty"`
	ExpirationYear  *int    `json:"expirationYear,omitempty"`
	CVV             *string `json:"cvv,omitempty"`
	CardType        *string `json:"cardType,omitempty"`

	AccountNumber     *string `json:"accountNumber,omitempty"`
	RoutingNumber     *string `json:"routingNumber,omitempty"`
	AccountHolderName *string `json:"accountHolderName,omitempty"`
	BankName          *string `json:"bankName,omitempty"`
}

func (d *PaymentMethodDTO) Validate() *errors.AppError {
	var missing []string

	if strings.TrimSpace(d.CustomerID) == "" {
		missing = append(missing, "customerId is required")
	}
	if strings.TrimSpace(d.PaymentName) == "" {
		missing = append(missing, "paymentName is required")
	}
	// Normalize here so every later type switch sees the canonical value.
	d.PaymentType = strings.ToUpper(d.PaymentType)
	switch d.PaymentType {
	case pmmodel.TypeCard, pmmodel.TypeBankAccount:
	default:
		missing = append(missing, "Invalid payment type")
	}

	if len(missing) > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("Payload misses information: %s", strings.Join(missing, ", ")),
			errors.ErrCodeValidationFailed,
		)
	}
	return nil
}

func (d *PaymentMethodDTO) toModel() *pmmodel.PaymentMethod {
	return &pmmodel.PaymentMethod{
		CustomerID:        d.CustomerID,
		PaymentName:       d.PaymentName,
		PaymentType:       d.PaymentType,
		CardHolderName:    d.CardHolderName,
		CardNumber:        d.CardNumber,
		ExpirationMonth:   d.ExpirationMonth,
		ExpirationYear:    d.ExpirationYear,
		CVV:               d.CVV,
		CardType:          d.CardType,
		AccountNumber:     d.AccountNumber,
		RoutingNumber:     d.RoutingNumber,
		AccountHolderName: d.AccountHolderName,
		BankName:          d.BankName,
	}
}
