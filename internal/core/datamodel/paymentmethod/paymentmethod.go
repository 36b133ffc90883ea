package paymentmethod

import (
	"time"
)

// Payment method types.
const (
	TypeCard        = "CARD"
	TypeBankAccount = "BANK_ACCOUNT"
)

type PaymentMethod struct {
	ID          string `json:"id" gorm:"primaryKey"`
	CustomerID  string `json:"customerId" gorm:"column:customer_id;not null"`
	PaymentName string `json:"paymentName" gorm:"column:payment_name;not null"`
	PaymentType string `json:"paymentType" gorm:"column:payment_type;not null"`

	CardHolderName  *string `json:"cardHolderName,omitempty" gorm:"column:card_holder_name"`
	CardNumber      *string `json:"cardNumber,omitempty" gorm:"column:card_number"`
	ExpirationMonth *int    `json:"expirationMonth,omitempty" gorm:"column:expiration_month"`
	ExpirationYear  *int    `json:"expirationYear,omitempty" gorm:"column:expiration_year"`
	CVV             *string `json:"cvv,omitempty" gorm:"column:cvv"`
	CardType        *string `json:"cardType,omitempty" gorm:"column:card_type"`

	AccountNumber     *string `json:"accountNumber,omitempty" gorm:"column:account_number"`
	RoutingNumber     *string `json:"routingNumber,omitempty" gorm:"column:routing_number"`
	AccountHolderName *string `json:"accountHolderName,omitempty" gorm:"column:account_holder_name"`
	BankName          *string `json:"bankName,omitempty" gorm:"column:bank_name"`

	DateCreated time.Time `json:"dateCreated" gorm:"column:date_created;default:now()"`
	DateUpdated time.Time `json:"dateUpdated" gorm:"column:date_updated;default:now()"`
}

func (PaymentMethod) TableName() string {
	return "payment_method"
}
