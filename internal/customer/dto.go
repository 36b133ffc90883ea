package customer

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/payment-service/internal"
)

type CustomerDTO struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

func (d *CustomerDTO) Validate() *errors.AppError {
	var missing []string

	if strings.TrimSpace(d.FirstName) == "" {
		missing = append(missing, "firstName is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		missing = append(missing, "lastName is required")
	}
	if strings.TrimSpace(d.Email) == "" || !strings.Contains(d.Email, "@") {
		missing = append(missing, "a valid email is required")
	}

	if len(missing) > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("Payload misses information: %s", strings.Join(missing, ", ")),
			errors.ErrCodeValidationFailed,
		)
	}
	return nil
}
