package payment

import (
	"time"
)

// Payment statuses. Only PENDING, PROCESSED and CANCELLED are reachable
// today; PROCESSING and FAILED are reserved for the gateway integration.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusProcessed  = "PROCESSED"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
)

type Payment struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	CustomerID      string    `json:"customerId" gorm:"column:customer_id;not null"`
	PaymentMethodID string    `json:"paymentMethodId" gorm:"column:payment_method_id;not null"`
	Amount          float64   `json:"amount" gorm:"column:amount;not null"`
	Status          string    `json:"status" gorm:"column:status;default:PENDING"`
	ProcessingTime  time.Time `json:"processingTime" gorm:"column:processing_time"`
	Version         int       `json:"version" gorm:"column:version;not null;default:0"`
	DateCreated     time.Time `json:"dateCreated" gorm:"column:date_created;default:now()"`
	DateUpdated     time.Time `json:"dateUpdated" gorm:"column:date_updated;default:now()"`
}

func (Payment) TableName() string {
	return "payment"
}

// IsTerminal reports whether no further transition is allowed out of status.
func IsTerminal(status string) bool {
	switch status {
	case StatusProcessed, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the state machine permits moving a payment
// from one status to another. Same-status writes are allowed only while
// PENDING (amount/method updates keep the status).
func CanTransition(from, to string) bool {
	if IsTerminal(from) {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusPending || to == StatusCancelled || to == StatusProcessed
	case StatusProcessing:
		return to == StatusProcessed || to == StatusFailed
	}
	return false
}

// ProcessingTimeFrom computes the settlement timestamp assigned at creation:
// midnight UTC, the configured number of days after now. Set once, never
// recomputed.
func ProcessingTimeFrom(now time.Time, processInDays int) time.Time {
	day := now.UTC().AddDate(0, 0, processInDays)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
