package customer

import (
	"time"
)

type Customer struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"firstName" gorm:"column:first_name;not null"`
	LastName    string    `json:"lastName" gorm:"column:last_name;not null"`
	Email       string    `json:"email" gorm:"column:email;not null;uniqueIndex"`
	DateOfBirth string    `json:"dateOfBirth" gorm:"column:date_of_birth"`
	PhoneNumber string    `json:"phoneNumber" gorm:"column:phone_number"`
	DateCreated time.Time `json:"dateCreated" gorm:"column:date_created;default:now()"`
	DateUpdated time.Time `json:"dateUpdated" gorm:"column:date_updated;default:now()"`
}

func (Customer) TableName() string {
	return "customer"
}
