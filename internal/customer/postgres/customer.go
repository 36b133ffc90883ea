package postgres

import (
	"errors"

	custmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/customer"
	custpkg "github.com/frahmantamala/payment-service/internal/customer"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) custpkg.RepositoryAPI {
	return &CustomerRepository{
		db: db,
	}
}

func (r *CustomerRepository) Create(c *custmodel.Customer) error {
	return r.db.Create(c).Error
}

func (r *CustomerRepository) GetByID(id string) (*custmodel.Customer, error) {
	var c custmodel.Customer
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, custpkg.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByEmail(email string) (*custmodel.Customer, error) {
	var c custmodel.Customer
	err := r.db.Where("email = ?", email).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, custpkg.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Save(c *custmodel.Customer) error {
	res := r.db.Model(&custmodel.Customer{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"first_name":    c.FirstName,
		"last_name":     c.LastName,
		"email":         c.Email,
		"date_of_birth": c.DateOfBirth,
		"phone_number":  c.PhoneNumber,
		"date_updated":  c.DateUpdated,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return custpkg.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&custmodel.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return custpkg.ErrNotFound
	}
	return nil
}
