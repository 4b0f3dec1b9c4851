package service

import (
	"context"
	"strings"

	"ecommerce-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerPatch struct {
	Name  *string
	Email *string
	Phone *string
}

type CustomerService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCustomerService(db *gorm.DB, log *zap.Logger) *CustomerService {
	return &CustomerService{db: db, log: log}
}

func (s *CustomerService) Create(ctx context.Context, c *models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return newError(ErrValidation, "customer_name is required.")
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	s.log.Info("customer created", zap.Uint("customer_id", c.ID))
	return nil
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := s.db.WithContext(ctx).Order("id").Find(&customers).Error
	return customers, err
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, lookupErr(err, "Customer not found!")
	}
	return &c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, p CustomerPatch) (*models.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, newError(ErrValidation, "customer_name must not be blank.")
		}
		updates["customer_name"] = *p.Name
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if len(updates) == 0 {
		return nil, newError(ErrValidation, "No updatable customer fields supplied.")
	}
	if err := s.db.WithContext(ctx).Model(c).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the customer together with its account, its orders and their product links.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Customer
		if err := tx.First(&c, id).Error; err != nil {
			return lookupErr(err, "Customer not found.")
		}

		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Exec("DELETE FROM order_products WHERE order_id IN ?", orderIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderStatusHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("customer_id = ?", id).Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerAccount{}).Error; err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
	if err != nil {
		return err
	}
	s.log.Info("customer deleted", zap.Uint("customer_id", id))
	return nil
}
