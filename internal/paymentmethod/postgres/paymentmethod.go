package postgres

import (
	"errors"
	"time"

	pmmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/paymentmethod"
	pmpkg "github.com/frahmantamala/payment-service/internal/paymentmethod"
	"gorm.io/gorm"
)

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) pmpkg.RepositoryAPI {
	return &PaymentMethodRepository{
		db: db,
	}
}

func (r *PaymentMethodRepository) Create(pm *pmmodel.PaymentMethod) error {
	return r.db.Create(pm).Error
}

func (r *PaymentMethodRepository) GetByID(id string) (*pmmodel.PaymentMethod, error) {
	var pm pmmodel.PaymentMethod
	err := r.db.Where("id = ?", id).First(&pm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pmpkg.ErrNotFound
		}
		return nil, err
	}
	return &pm, nil
}

func (r *PaymentMethodRepository) Save(pm *pmmodel.PaymentMethod) error {
	pm.DateUpdated = time.Now()
	// Select("*") forces nil pointer fields to be written out, so switching a
	// method between CARD and BANK_ACCOUNT clears the other type's columns.
	res := r.db.Model(&pmmodel.PaymentMethod{}).Where("id = ?", pm.ID).Select("*").Updates(pm)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pmpkg.ErrNotFound
	}
	return nil
}

func (r *PaymentMethodRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&pmmodel.PaymentMethod{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pmpkg.ErrNotFound
	}
	return nil
}

func (r *PaymentMethodRepository) FindByCustomer(customerID string, page, size int) ([]*pmmodel.PaymentMethod, int64, error) {
	var total int64
	if err := r.db.Model(&pmmodel.PaymentMethod{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var methods []*pmmodel.PaymentMethod
	err := r.db.Where("customer_id = ?", customerID).
		Order("date_created DESC").
		Offset(page * size).
		Limit(size).
		Find(&methods).Error
	if err != nil {
		return nil, 0, err
	}
	return methods, total, nil
}

func (r *PaymentMethodRepository) FindByCustomerAndCardNumber(customerID, cardNumber string) (*pmmodel.PaymentMethod, error) {
	var pm pmmodel.PaymentMethod
	err := r.db.Where("customer_id = ? AND card_number = ?", customerID, cardNumber).First(&pm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pmpkg.ErrNotFound
		}
		return nil, err
	}
	return &pm, nil
}

func (r *PaymentMethodRepository) FindByCustomerAndAccountNumber(customerID, accountNumber string) (*pmmodel.PaymentMethod, error) {
	var pm pmmodel.PaymentMethod
	err := r.db.Where("customer_id = ? AND account_number = ?", customerID, accountNumber).First(&pm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pmpkg.ErrNotFound
		}
		return nil, err
	}
	return &pm, nil
}
