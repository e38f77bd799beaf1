package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/database"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     24 * time.Hour,
		AuthMode:      config.AuthModeDemo,
		DemoUserID:    "demo-user-id",
		DemoUserEmail: "demo@example.com",
		DemoUserName:  "Demo User",
		PageSize:      10,
		MaxPageSize:   100,
		ImportMaxRows: 200,
	}
}

func ptr[T any](v T) *T { return &v }

func buyerInput(name, phone string) validation.BuyerInput {
	in, err := validation.ValidateCreate(validation.BuyerInput{
		FullName:     name,
		Phone:        phone,
		City:         "Chandigarh",
		PropertyType: "Plot",
		Purpose:      "Buy",
		Timeline:     "Exploring",
		Source:       "Website",
	})
	if err != nil {
		panic(err)
	}
	return in
}
