package service

import (
	"context"
	"errors"
	"strings"

	"ecommerce-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountPatch struct {
	Username *string
	Password *string
}

type AccountService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAccountService(db *gorm.DB, log *zap.Logger) *AccountService {
	return &AccountService{db: db, log: log}
}

// Create registers a login for an existing customer. Usernames are unique and a
// customer owns at most one account.
func (s *AccountService) Create(ctx context.Context, username, password string, customerID uint) (*models.CustomerAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, newError(ErrValidation, "username and password are required.")
	}

	acc := &models.CustomerAccount{Username: username, CustomerID: customerID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := usernameFree(tx, username, 0); err != nil {
			return err
		}

		var customers int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).Count(&customers).Error; err != nil {
			return err
		}
		if customers == 0 {
			return newError(ErrValidation, "Customer with ID %d does not exist.", customerID)
		}

		var owned int64
		if err := tx.Model(&models.CustomerAccount{}).Where("customer_id = ?", customerID).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return newError(ErrConflict, "Customer with ID %d already has an account.", customerID)
		}

		if err := acc.SetPassword(password); err != nil {
			return err
		}
		return tx.Create(acc).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.duplicateErr(ctx, username, customerID)
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("customer account created", zap.Uint("account_id", acc.ID), zap.Uint("customer_id", customerID))
	return acc, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.CustomerAccount, error) {
	accounts := []models.CustomerAccount{}
	err := s.db.WithContext(ctx).Order("id").Find(&accounts).Error
	return accounts, err
}

func (s *AccountService) Get(ctx context.Context, id uint) (*models.CustomerAccount, error) {
	var acc models.CustomerAccount
	if err := s.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, lookupErr(err, "Customer account not found!")
	}
	return &acc, nil
}

// Update changes the username and/or password. A new password is re-hashed.
func (s *AccountService) Update(ctx context.Context, id uint, patch AccountPatch) (*models.CustomerAccount, error) {
	var acc models.CustomerAccount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&acc, id).Error; err != nil {
			return lookupErr(err, "Customer account not found.")
		}
		if patch.Username == nil && patch.Password == nil {
			return newError(ErrValidation, "No updatable account fields supplied.")
		}
		if patch.Username != nil {
			username := strings.TrimSpace(*patch.Username)
			if username == "" {
				return newError(ErrValidation, "username must not be blank.")
			}
			if err := usernameFree(tx, username, acc.ID); err != nil {
				return err
			}
			acc.Username = username
		}
		if patch.Password != nil {
			if *patch.Password == "" {
				return newError(ErrValidation, "password must not be blank.")
			}
			if err := acc.SetPassword(*patch.Password); err != nil {
				return err
			}
		}
		return tx.Save(&acc).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = newError(ErrConflict, "Username already exists")
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.CustomerAccount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newError(ErrNotFound, "Customer account not found.")
	}
	return nil
}

// Authenticate returns the account for username when password matches. Unknown users
// and wrong passwords produce the same error.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.CustomerAccount, error) {
	var acc models.CustomerAccount
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&acc).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil || !acc.CheckPassword(password) {
		s.log.Warn("login rejected", zap.String("username", username))
		return nil, newError(ErrUnauthorized, "Invalid username or password.")
	}
	return &acc, nil
}

// duplicateErr explains a unique index violation that slipped past the pre-checks
// because a concurrent request committed first.
func (s *AccountService) duplicateErr(ctx context.Context, username string, customerID uint) error {
	if err := usernameFree(s.db.WithContext(ctx), username, 0); err != nil {
		return err
	}
	return newError(ErrConflict, "Customer with ID %d already has an account.", customerID)
}

// usernameFree fails with ErrConflict when another account (not exceptID) uses username.
func usernameFree(tx *gorm.DB, username string, exceptID uint) error {
	var taken int64
	err := tx.Model(&models.CustomerAccount{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&taken).Error
	if err != nil {
		return err
	}
	if taken > 0 {
		return newError(ErrConflict, "Username already exists")
	}
	return nil
}
