package service

import (
	"testing"

	"ecommerce-api/config"
	"ecommerce-api/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	customers *CustomerService
	accounts  *AccountService
	products  *ProductService
	orders    *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := config.OpenDB(&config.Config{DBDriver: "sqlite", DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := zaptest.NewLogger(t)
	return &fixture{
		db:        db,
		customers: NewCustomerService(db, log),
		accounts:  NewAccountService(db, log),
		products:  NewProductService(db, log),
		orders:    NewOrderService(db, log),
	}
}

func (f *fixture) customer(t *testing.T, name string) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: name, Email: name + "@example.com", Phone: "555-0100"}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) product(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, StockLevel: stock}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.StockLevel
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) links(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table("order_products").Count(&n).Error)
	return n
}
