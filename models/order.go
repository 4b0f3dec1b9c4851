package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is free text; the values below are the ones the service knows about.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusCompleted OrderStatus = "Completed"
	StatusCanceled  OrderStatus = "Canceled"
)

// DeliveryWindowDays is how far past the order date the expected delivery lands.
const DeliveryWindowDays = 7

type Order struct {
	ID                   uint                 `gorm:"primaryKey"`
	OrderDate            time.Time            `gorm:"type:date;not null"`
	CustomerID           uint                 `gorm:"not null;index"`
	Status               OrderStatus          `gorm:"size:50;default:'Pending'"`
	ShipmentDetails      string               `gorm:"size:255;default:'None'"`
	ExpectedDeliveryDate time.Time            `gorm:"type:date"`
	TotalPrice           float64              `gorm:"not null;default:0"`
	Products             []Product            `gorm:"many2many:order_products;"`
	History              []OrderStatusHistory `gorm:"foreignKey:OrderID"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderStatusHistory is one entry of an order's status audit trail. FromStatus is empty
// for the entry written when the order is placed.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status" gorm:"size:50"`
	ToStatus   OrderStatus `json:"to_status" gorm:"size:50;not null"`
	Note       string      `json:"note" gorm:"size:255"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewOrder builds a pending order dated orderDate (truncated to the day).
// The expected delivery date is fixed here and never recomputed.
func NewOrder(customerID uint, orderDate time.Time) *Order {
	day := time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day(), 0, 0, 0, 0, time.UTC)
	return &Order{
		OrderDate:            day,
		CustomerID:           customerID,
		Status:               StatusPending,
		ShipmentDetails:      "None",
		ExpectedDeliveryDate: day.AddDate(0, 0, DeliveryWindowDays),
	}
}

// CalculateTotalPrice snapshots the sum of the attached products' current prices.
func (o *Order) CalculateTotalPrice() {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(decimal.NewFromFloat(p.Price))
	}
	o.TotalPrice = total.InexactFloat64()
}
