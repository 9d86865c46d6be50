package tracking

import (
	"context"
	"testing"
	"time"

	"tracking-auditor/feature/tracking/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestLogsByWindow(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"id", "shop", "order_id", "platform", "value", "currency", "status", "event_id"})
	rows.AddRow(1, "demo.myshopify.com", "1001", "meta", "100.00", "USD", models.StatusSent, "evt-1")
	rows.AddRow(2, "demo.myshopify.com", "1001", "tiktok", "100.00", "USD", models.StatusFailed, "evt-2")

	mock.ExpectQuery("SELECT \\* FROM `conversion_logs`").WillReturnRows(rows)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	logs, err := store.LogsByWindow(context.Background(), "demo.myshopify.com", from, from.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "meta", logs[0].Platform)
	assert.True(t, logs[0].Value.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, models.StatusFailed, logs[1].Status)
}

func TestLatestReceiptByOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "shop", "order_id", "event_type", "value", "currency", "consent_state", "payload"})
		rows.AddRow(7, "demo.myshopify.com", "1001", "checkout_completed", "100.00", "USD", models.ConsentGranted, `{"event_name":"checkout_completed"}`)

		mock.ExpectQuery("SELECT \\* FROM `pixel_receipts`").WillReturnRows(rows)

		receipt, err := store.LatestReceiptByOrder(context.Background(), "demo.myshopify.com", "1001")
		require.NoError(t, err)
		require.NotNil(t, receipt)
		assert.Equal(t, "checkout_completed", receipt.EventType)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `pixel_receipts`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		receipt, err := store.LatestReceiptByOrder(context.Background(), "demo.myshopify.com", "9999")
		require.NoError(t, err)
		assert.Nil(t, receipt)
	})
}

func TestRecentOrderIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"order_id"})
	rows.AddRow("1003")
	rows.AddRow("1002")
	rows.AddRow("1001")

	mock.ExpectQuery("SELECT DISTINCT `order_id` FROM `conversion_logs`").WillReturnRows(rows)

	ids, err := store.RecentOrderIDs(context.Background(), "demo.myshopify.com", time.Now().Add(-24*time.Hour), 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"1003", "1002", "1001"}, ids)
}

func TestUpsertSummary(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `reconciliation_summaries` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	summary := &models.ReconciliationSummary{
		Shop:                   "demo.myshopify.com",
		Platform:               "meta",
		ReportDate:             time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		OrdersTotal:            10,
		RevenueTotal:           decimal.RequireFromString("1000.00"),
		OrdersSent:             9,
		RevenueSent:            decimal.RequireFromString("900.00"),
		OrderDiscrepancyRate:   0.1,
		RevenueDiscrepancyRate: 0.1,
	}

	err := store.UpsertSummary(context.Background(), summary)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVerificationRun(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `verification_runs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	run := &models.VerificationRun{
		RunID:         "7f9c35b4-0000-4000-8000-000000000000",
		Shop:          "demo.myshopify.com",
		OrdersChecked: 12,
		Consistent:    10,
		Partial:       1,
		Inconsistent:  1,
	}

	err := store.SaveVerificationRun(context.Background(), run)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
