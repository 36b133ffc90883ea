package payment

import (
	"fmt"

	errors "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
)

// Check is a single business rule gating a payment mutation. Checks are
// pure: they capture their inputs at construction and have no side effects.
type Check func() *errors.AppError

// RunChecks evaluates checks in order and stops at the first failure; later
// checks are never evaluated.
func RunChecks(checks ...Check) *errors.AppError {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// MinimumAmount fails when amount is at or below the configured minimum.
func MinimumAmount(amount, minimum float64) Check {
	return func() *errors.AppError {
		if amount <= minimum {
			return errors.NewValidationError(
				fmt.Sprintf("Minimum amount %v is required", minimum),
				errors.ErrCodeInvalidAmount,
			)
		}
		return nil
	}
}

// ModificationBudget fails once the record's version counter, which doubles
// as the count of persisted mutations, reaches the configured budget.
func ModificationBudget(currentVersion, maxModifications int) Check {
	return func() *errors.AppError {
		if currentVersion >= maxModifications {
			return errors.NewValidationError(
				"Payment modification exhausted",
				errors.ErrCodeModificationExhausted,
			)
		}
		return nil
	}
}

// PendingStatus fails for any record no longer in PENDING.
func PendingStatus(status string) Check {
	return func() *errors.AppError {
		if status != paymentmodel.StatusPending {
			return errors.NewValidationError(
				"Payment cannot be updated",
				errors.ErrCodeInvalidState,
			)
		}
		return nil
	}
}
