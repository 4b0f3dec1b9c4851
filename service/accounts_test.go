package service

import (
	"context"
	"fmt"
	"testing"

	"ecommerce-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAccountCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.customer(t, "ada")
	bob := f.customer(t, "bob")

	acc, err := f.accounts.Create(ctx, "ada", "hunter22", ada.ID)
	require.NoError(t, err)
	assert.NotZero(t, acc.ID)
	assert.NotEqual(t, "hunter22", acc.PasswordHash)
	assert.True(t, acc.CheckPassword("hunter22"))

	_, err = f.accounts.Create(ctx, "ada", "other-pass", bob.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Username already exists")

	_, err = f.accounts.Create(ctx, "ada2", "other-pass", ada.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.accounts.Create(ctx, "ghost", "other-pass", 404)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.Create(ctx, "  ", "pw", bob.ID)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, int64(1), f.count(t, &models.CustomerAccount{}))
}

func TestAccountUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.customer(t, "ada")
	bob := f.customer(t, "bob")
	acc, err := f.accounts.Create(ctx, "ada", "hunter22", ada.ID)
	require.NoError(t, err)
	_, err = f.accounts.Create(ctx, "bob", "hunter22", bob.ID)
	require.NoError(t, err)

	password := "correct horse"
	updated, err := f.accounts.Update(ctx, acc.ID, AccountPatch{Password: &password})
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("correct horse"))
	assert.False(t, updated.CheckPassword("hunter22"))

	same := "ada"
	_, err = f.accounts.Update(ctx, acc.ID, AccountPatch{Username: &same})
	assert.NoError(t, err, "keeping its own username is not a conflict")

	taken := "bob"
	_, err = f.accounts.Update(ctx, acc.ID, AccountPatch{Username: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.accounts.Update(ctx, acc.ID, AccountPatch{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.Update(ctx, 404, AccountPatch{Username: &same})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.customer(t, "ada")
	_, err := f.accounts.Create(ctx, "ada", "hunter22", ada.ID)
	require.NoError(t, err)

	acc, err := f.accounts.Authenticate(ctx, "ada", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, acc.CustomerID)

	_, err = f.accounts.Authenticate(ctx, "ada", "hunter23")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.accounts.Authenticate(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.customer(t, "ada")
	acc, err := f.accounts.Create(ctx, "ada", "hunter22", ada.ID)
	require.NoError(t, err)

	require.NoError(t, f.accounts.Delete(ctx, acc.ID))
	assert.ErrorIs(t, f.accounts.Delete(ctx, acc.ID), ErrNotFound)
	_, err = f.accounts.Get(ctx, acc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountCreate_UniqueIndexRaceIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.customer(t, "ada")

	// A concurrent request registers an account for the same customer after the
	// pre-checks have passed.
	raced := false
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:concurrent_signup", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "customer_accounts" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO customer_accounts (username, password_hash, customer_id) VALUES (?, ?, ?)",
			"ada-elsewhere", "x", ada.ID)
	}))

	_, err := f.accounts.Create(ctx, "ada", "hunter22", ada.ID)
	require.True(t, raced)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, fmt.Sprintf("Customer with ID %d already has an account.", ada.ID))
}

func TestDuplicateUsernameIsTranslated(t *testing.T) {
	f := newFixture(t)
	ada := f.customer(t, "ada")
	bob := f.customer(t, "bob")

	require.NoError(t, f.db.Create(&models.CustomerAccount{Username: "ada", PasswordHash: "x", CustomerID: ada.ID}).Error)
	err := f.db.Create(&models.CustomerAccount{Username: "ada", PasswordHash: "x", CustomerID: bob.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
