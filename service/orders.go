package service

import (
	"context"
	"strings"
	"time"

	"ecommerce-api/models"
	"ecommerce-api/statemachine"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderPatch struct {
	CustomerID      *uint
	Status          *string
	ShipmentDetails *string
}

// OrderService owns order placement and the order status lifecycle.
type OrderService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewOrderService(db *gorm.DB, log *zap.Logger) *OrderService {
	return &OrderService{db: db, log: log, now: time.Now}
}

// Create places an order for customerID containing the products in itemIDs.
//
// Everything happens in one transaction: each product is looked up in request order,
// rejected when out of stock, and decremented by exactly one with a conditional update
// so two concurrent orders cannot both take the last unit. The total is the sum of the
// products' prices at this moment. Any failure rolls back the whole order, including the
// decrements already made for earlier items. A product listed more than once is ordered once.
func (s *OrderService) Create(ctx context.Context, customerID uint, itemIDs []uint) (*models.Order, error) {
	if customerID == 0 {
		return nil, newError(ErrValidation, "customer_id is required.")
	}
	if len(itemIDs) == 0 {
		return nil, newError(ErrValidation, "items must contain at least one product id.")
	}

	order := models.NewOrder(customerID, s.now())
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customers int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).Count(&customers).Error; err != nil {
			return err
		}
		if customers == 0 {
			return newError(ErrValidation, "Customer with ID %d does not exist.", customerID)
		}

		seen := make(map[uint]bool, len(itemIDs))
		for _, id := range itemIDs {
			if seen[id] {
				continue
			}
			seen[id] = true

			var p models.Product
			if err := tx.First(&p, id).Error; err != nil {
				return lookupErr(err, "Product with ID %d not found.", id)
			}
			if p.StockLevel <= 0 {
				return newError(ErrOutOfStock, "Product %s is out of stock.", p.Name)
			}
			took, err := takeStock(tx, id)
			if err != nil {
				return err
			}
			if !took {
				return newError(ErrOutOfStock, "Product %s is out of stock.", p.Name)
			}
			p.StockLevel--
			order.Products = append(order.Products, p)
		}

		order.CalculateTotalPrice()
		// Products.* skips upserting the product rows but still writes order_products.
		if err := tx.Omit("Products.*").Create(order).Error; err != nil {
			return err
		}
		return recordStatus(tx, order.ID, "", order.Status, "Order placed")
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", customerID),
		zap.Int("items", len(order.Products)),
		zap.Float64("total_price", order.TotalPrice))
	return order, nil
}

// takeStock removes one unit of product id, reporting false when none was left.
// The stock check and the decrement are a single statement.
func takeStock(tx *gorm.DB, id uint) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_level > 0", id).
		UpdateColumn("stock_level", gorm.Expr("stock_level - ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func recordStatus(tx *gorm.DB, orderID uint, from, to models.OrderStatus, note string) error {
	return tx.Create(&models.OrderStatusHistory{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		Note:       note,
	}).Error
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).Preload("Products").Order("id").Find(&orders).Error
	return orders, err
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).
		Preload("Products").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	if err != nil {
		return nil, lookupErr(err, "Order not found!")
	}
	return &o, nil
}

// ListByCustomer returns the customer's order history; an unknown customer has none.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Products").
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&orders).Error
	return orders, err
}

// Update applies a patch. Status is free text except that the cancel guard still applies.
// The order date, expected delivery date and total are not patchable.
func (s *OrderService) Update(ctx context.Context, id uint, patch OrderPatch) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			return lookupErr(err, "Order not found.")
		}

		updates := map[string]any{}
		if patch.CustomerID != nil {
			var customers int64
			if err := tx.Model(&models.Customer{}).Where("id = ?", *patch.CustomerID).Count(&customers).Error; err != nil {
				return err
			}
			if customers == 0 {
				return newError(ErrValidation, "Customer with ID %d does not exist.", *patch.CustomerID)
			}
			updates["customer_id"] = *patch.CustomerID
		}
		if patch.Status != nil {
			status := models.OrderStatus(strings.TrimSpace(*patch.Status))
			if status == "" {
				return newError(ErrValidation, "status must not be blank.")
			}
			if err := statemachine.CanTransition(o.Status, status); err != nil {
				return err
			}
			updates["status"] = status
			if status != o.Status {
				if err := recordStatus(tx, o.ID, o.Status, status, "Status updated"); err != nil {
					return err
				}
			}
		}
		if patch.ShipmentDetails != nil {
			updates["shipment_details"] = *patch.ShipmentDetails
		}
		if len(updates) == 0 {
			return newError(ErrValidation, "No updatable order fields supplied.")
		}
		return tx.Model(&o).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel moves an order to Canceled unless it has already shipped or completed.
// Stock taken by the order is not returned.
func (s *OrderService) Cancel(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&o, id).Error; err != nil {
			return lookupErr(err, "Order not found.")
		}
		if err := statemachine.CanCancel(o.Status); err != nil {
			return newError(ErrInvalidTransition,
				"Cannot cancel order. It has already been shipped or completed.")
		}
		prev := o.Status
		if err := tx.Model(&o).Update("status", models.StatusCanceled).Error; err != nil {
			return err
		}
		return recordStatus(tx, o.ID, prev, models.StatusCanceled, "Order canceled by customer")
	})
	if err != nil {
		return nil, err
	}
	o.Status = models.StatusCanceled
	s.log.Info("order canceled", zap.Uint("order_id", id))
	return &o, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			return lookupErr(err, "Order not found.")
		}
		if err := tx.Model(&o).Association("Products").Clear(); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&o).Error
	})
}
