package customer

import (
	"errors"

	custmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/customer"
)

var (
	ErrNotFound       = errors.New("customer not found")
	ErrDuplicateEmail = errors.New("customer email already registered")
)

type RepositoryAPI interface {
	Create(c *custmodel.Customer) error
	GetByID(id string) (*custmodel.Customer, error)
	GetByEmail(email string) (*custmodel.Customer, error)
	Save(c *custmodel.Customer) error
	Delete(id string) error
}

type ServiceAPI interface {
	Register(dto *CustomerDTO) (*custmodel.Customer, error)
	Update(id string, dto *CustomerDTO) (*custmodel.Customer, error)
	Get(id string) (*custmodel.Customer, error)
	Delete(id string) error
}
