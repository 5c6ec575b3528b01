package service

import (
	"testing"

	"bizflow-backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database for a single test. Capping the pool
// at one connection keeps every session on the same memory database and
// serializes concurrent writers the way a real server's row locks would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.InventoryItem{},
		&model.InventoryTransaction{},
		&model.Project{},
		&model.Task{},
		&model.TimeEntry{},
		&model.FinancialRecord{},
		&model.AccountingEntry{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
