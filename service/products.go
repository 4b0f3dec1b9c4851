package service

import (
	"context"
	"fmt"
	"strings"

	"ecommerce-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductPatch struct {
	Name  *string
	Price *float64
}

type ProductService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductService(db *gorm.DB, log *zap.Logger) *ProductService {
	return &ProductService{db: db, log: log}
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return newError(ErrValidation, "product_name is required.")
	}
	if p.Price < 0 {
		return newError(ErrValidation, "price must not be negative.")
	}
	if p.StockLevel < 0 {
		return newError(ErrValidation, "stock_level must not be negative.")
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return err
	}
	s.log.Info("product created", zap.Uint("product_id", p.ID), zap.Float64("price", p.Price))
	return nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).Order("id").Find(&products).Error
	return products, err
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, lookupErr(err, "Product not found!")
	}
	return &p, nil
}

// Update changes name and price only. Stock moves through UpdateStockLevel, RestockSweep
// and order placement; existing order totals keep their snapshot.
func (s *ProductService) Update(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, newError(ErrValidation, "product_name must not be blank.")
		}
		updates["product_name"] = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, newError(ErrValidation, "price must not be negative.")
		}
		updates["price"] = *patch.Price
	}
	if len(updates) == 0 {
		return nil, newError(ErrValidation, "No updatable product fields supplied.")
	}
	if err := s.db.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the product and its order links. Orders that contained it keep their total.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr(err, "Product not found.")
		}
		if err := tx.Exec("DELETE FROM order_products WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// UpdateStockLevel overwrites the stock level of a product.
func (s *ProductService) UpdateStockLevel(ctx context.Context, id uint, level int) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if level < 0 {
		return nil, newError(ErrValidation, "stock_level must not be negative.")
	}
	if err := s.db.WithContext(ctx).Model(p).Update("stock_level", level).Error; err != nil {
		return nil, err
	}
	s.log.Info("stock level set", zap.Uint("product_id", id), zap.Int("stock_level", level))
	p.StockLevel = level
	return p, nil
}

// RestockSweep sets every product whose stock is below threshold to target and returns how
// many were restocked. Each product is written in its own statement, so a failure part way
// through keeps the products already restocked.
func (s *ProductService) RestockSweep(ctx context.Context, threshold, target int) (int, error) {
	db := s.db.WithContext(ctx)

	var low []models.Product
	if err := db.Where("stock_level < ?", threshold).Order("id").Find(&low).Error; err != nil {
		return 0, err
	}

	restocked := 0
	for _, p := range low {
		// The threshold check is repeated so a concurrent order or stock update is not clobbered.
		res := db.Model(&models.Product{}).
			Where("id = ? AND stock_level < ?", p.ID, threshold).
			Update("stock_level", target)
		if res.Error != nil {
			return restocked, fmt.Errorf("restock product %d: %w", p.ID, res.Error)
		}
		restocked += int(res.RowsAffected)
	}
	if restocked > 0 {
		s.log.Info("products restocked",
			zap.Int("count", restocked),
			zap.Int("threshold", threshold),
			zap.Int("target", target))
	}
	return restocked, nil
}
