package models

import "time"

type Customer struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Name      string           `json:"customer_name" gorm:"column:customer_name;size:75;not null"`
	Email     string           `json:"email" gorm:"size:150"`
	Phone     string           `json:"phone" gorm:"size:16"`
	Account   *CustomerAccount `json:"-" gorm:"foreignKey:CustomerID"`
	Orders    []Order          `json:"-" gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time        `json:"-"`
	UpdatedAt time.Time        `json:"-"`
}
