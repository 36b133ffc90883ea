package payment

import (
	"errors"

	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
)

// Sentinel errors returned by the repository; the service maps them onto the
// API error taxonomy.
var (
	ErrNotFound        = errors.New("payment not found")
	ErrVersionConflict = errors.New("payment version conflict")
)

// RepositoryAPI is the only way payment rows are read or written.
type RepositoryAPI interface {
	// Create assigns nothing; the caller provides the id. Version starts at 0.
	Create(p *paymentmodel.Payment) error
	GetByID(id string) (*paymentmodel.Payment, error)
	// Save persists a full record read via GetByID. The write is conditional
	// on the version the caller read; a concurrent writer having bumped it
	// yields ErrVersionConflict and nothing is written.
	Save(p *paymentmodel.Payment) (*paymentmodel.Payment, error)
	// BulkTransition moves every row in fromStatus to toStatus in a single
	// conditional update, without loading rows, and returns the row count.
	BulkTransition(fromStatus, toStatus string) (int64, error)
	FindByCustomer(customerID string, page, size int) ([]*paymentmodel.Payment, int64, error)
}

// ServiceAPI is the lifecycle surface consumed by the transport layer and
// wrapped by the caching decorator.
type ServiceAPI interface {
	Pay(dto *PaymentDTO) (*paymentmodel.Payment, error)
	Update(id string, dto *PaymentDTO) (*paymentmodel.Payment, error)
	Cancel(id string) (*paymentmodel.Payment, error)
	Get(id string) (*paymentmodel.Payment, error)
	Search(customerID string, page, size int) (*Page, error)
}

// Page is the paginated search result, shaped like the wire envelope.
type Page struct {
	Content      []*paymentmodel.Payment `json:"content"`
	CurrentPage  int                     `json:"currentPage"`
	TotalRecords int64                   `json:"totalRecords"`
	TotalPages   int                     `json:"totalPages"`
}
