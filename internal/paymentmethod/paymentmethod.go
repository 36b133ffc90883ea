package paymentmethod

import (
	"errors"

	pmmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/paymentmethod"
)

var (
	ErrNotFound  = errors.New("payment method not found")
	ErrDuplicate = errors.New("payment method already exists")
)

type RepositoryAPI interface {
	Create(pm *pmmodel.PaymentMethod) error
	GetByID(id string) (*pmmodel.PaymentMethod, error)
	Save(pm *pmmodel.PaymentMethod) error
	Delete(id string) error
	FindByCustomer(customerID string, page, size int) ([]*pmmodel.PaymentMethod, int64, error)
	FindByCustomerAndCardNumber(customerID, cardNumber string) (*pmmodel.PaymentMethod, error)
	FindByCustomerAndAccountNumber(customerID, accountNumber string) (*pmmodel.PaymentMethod, error)
}

type ServiceAPI interface {
	Add(dto *PaymentMethodDTO) (*pmmodel.PaymentMethod, error)
	Update(id string, dto *PaymentMethodDTO) (*pmmodel.PaymentMethod, error)
	Get(id string) (*pmmodel.PaymentMethod, error)
	Delete(id string) error
	Search(customerID string, page, size int) (*Page, error)
}

type Page struct {
	Content      []*pmmodel.PaymentMethod `json:"content"`
	CurrentPage  int                      `json:"currentPage"`
	TotalRecords int64                    `json:"totalRecords"`
	TotalPages   int                      `json:"totalPages"`
}
