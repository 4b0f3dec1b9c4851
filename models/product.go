package models

import "time"

type Product struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"product_name" gorm:"column:product_name;size:255;not null"`
	Price      float64   `json:"price" gorm:"not null"`
	StockLevel int       `json:"stock_level" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
