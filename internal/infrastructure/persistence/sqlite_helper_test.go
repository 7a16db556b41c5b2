package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

// setupTestDB opens an isolated in-memory sqlite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func mustClient(t *testing.T, db *gorm.DB, first, last, email string) *client.Client {
	t.Helper()
	c, err := client.NewClient(first, last, email, "")
	require.NoError(t, err)
	require.NoError(t, NewGormClientRepository(db).Create(context.Background(), c))
	return c
}

func mustPlan(t *testing.T, db *gorm.DB, name string, price int64) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(name, "", 30, decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, NewGormPlanRepository(db).Create(context.Background(), p))
	return p
}

// newContract builds a vigente contract valid at now, ending after days
func newContract(t *testing.T, clientID, planID uuid.UUID, now time.Time, days int) *contract.Contract {
	t.Helper()
	c, err := contract.NewContract(clientID, planID, contract.Terms{
		StartDate: now.Add(-time.Hour),
		EndDate:   now.AddDate(0, 0, days),
		Price:     decimal.NewFromInt(90),
	}, now)
	require.NoError(t, err)
	return c
}
