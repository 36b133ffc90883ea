package postgres

import (
	"errors"
	"time"

	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	paymentpkg "github.com/frahmantamala/payment-service/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.RepositoryAPI {
	return &PaymentRepository{
		db: db,
	}
}

func (r *PaymentRepository) Create(p *paymentmodel.Payment) error {
	p.Version = 0
	now := time.Now()
	p.DateCreated = now
	p.DateUpdated = now
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id string) (*paymentmodel.Payment, error) {
	var p paymentmodel.Payment
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentpkg.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save persists the record with a compare-and-swap on the version the caller
// read: the update only matches the row while its version is unchanged, so a
// lost update surfaces as ErrVersionConflict instead of a silent overwrite.
func (r *PaymentRepository) Save(p *paymentmodel.Payment) (*paymentmodel.Payment, error) {
	now := time.Now()
	res := r.db.Model(&paymentmodel.Payment{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]interface{}{
			"payment_method_id": p.PaymentMethodID,
			"amount":            p.Amount,
			"status":            p.Status,
			"version":           gorm.Expr("version + 1"),
			"date_updated":      now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&paymentmodel.Payment{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, paymentpkg.ErrNotFound
		}
		return nil, paymentpkg.ErrVersionConflict
	}

	p.Version++
	p.DateUpdated = now
	return p, nil
}

// BulkTransition is a single conditional update over every row in
// fromStatus. No batch limit: settlement here is a placeholder, and a real
// reconciler would fetch with a bounded page size and process records
// individually.
func (r *PaymentRepository) BulkTransition(fromStatus, toStatus string) (int64, error) {
	res := r.db.Model(&paymentmodel.Payment{}).
		Where("status = ?", fromStatus).
		Updates(map[string]interface{}{
			"status":       toStatus,
			"version":      gorm.Expr("version + 1"),
			"date_updated": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *PaymentRepository) FindByCustomer(customerID string, page, size int) ([]*paymentmodel.Payment, int64, error) {
	var total int64
	if err := r.db.Model(&paymentmodel.Payment{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []*paymentmodel.Payment
	err := r.db.Where("customer_id = ?", customerID).
		Order("date_created DESC").
		Offset(page * size).
		Limit(size).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
