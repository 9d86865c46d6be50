package tracking

import (
	"context"
	"errors"
	"time"

	"tracking-auditor/feature/tracking/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store supplies the internally logged tracking records for reconciliation
// and persists per-platform summary rows and verification runs.
type Store interface {
	// LogsByWindow returns all conversion logs for a shop created inside [from, to].
	LogsByWindow(ctx context.Context, shop string, from, to time.Time) ([]models.ConversionLog, error)
	// ReceiptsByWindow returns all pixel receipts for a shop created inside [from, to].
	ReceiptsByWindow(ctx context.Context, shop string, from, to time.Time) ([]models.PixelReceipt, error)
	// LogsByOrder returns the conversion logs for one order, oldest first.
	LogsByOrder(ctx context.Context, shop, orderID string) ([]models.ConversionLog, error)
	// LatestReceiptByOrder returns the most recent pixel receipt for one
	// order, or nil if the order has no receipt.
	LatestReceiptByOrder(ctx context.Context, shop, orderID string) (*models.PixelReceipt, error)
	// LatestEventByOrder returns the most recent stored event snapshot for
	// one order, or nil if none exists.
	LatestEventByOrder(ctx context.Context, shop, orderID string) (*models.EventLog, error)
	// RecentOrderIDs returns up to limit distinct order ids with tracking
	// activity since the given time, newest first.
	RecentOrderIDs(ctx context.Context, shop string, since time.Time, limit int) ([]string, error)
	// UpsertSummary writes one per-(shop, platform, date) summary row,
	// overwriting any prior row for the same key.
	UpsertSummary(ctx context.Context, summary *models.ReconciliationSummary) error
	// SaveVerificationRun persists one bulk consistency run.
	SaveVerificationRun(ctx context.Context, run *models.VerificationRun) error
}

// GormStore is the MySQL-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given database handle.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the tracking tables.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.ConversionLog{},
		&models.PixelReceipt{},
		&models.EventLog{},
		&models.ReconciliationSummary{},
		&models.VerificationRun{},
	)
}

// LogsByWindow returns all conversion logs for a shop created inside the window.
func (s *GormStore) LogsByWindow(ctx context.Context, shop string, from, to time.Time) ([]models.ConversionLog, error) {
	var logs []models.ConversionLog
	err := s.db.WithContext(ctx).
		Where("shop = ? AND created_at BETWEEN ? AND ?", shop, from, to).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ReceiptsByWindow returns all pixel receipts for a shop created inside the window.
func (s *GormStore) ReceiptsByWindow(ctx context.Context, shop string, from, to time.Time) ([]models.PixelReceipt, error) {
	var receipts []models.PixelReceipt
	err := s.db.WithContext(ctx).
		Where("shop = ? AND created_at BETWEEN ? AND ?", shop, from, to).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// LogsByOrder returns the conversion logs for one order, oldest first.
func (s *GormStore) LogsByOrder(ctx context.Context, shop, orderID string) ([]models.ConversionLog, error) {
	var logs []models.ConversionLog
	err := s.db.WithContext(ctx).
		Where("shop = ? AND order_id = ?", shop, orderID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// LatestReceiptByOrder returns the most recent pixel receipt for one order.
func (s *GormStore) LatestReceiptByOrder(ctx context.Context, shop, orderID string) (*models.PixelReceipt, error) {
	var receipt models.PixelReceipt
	err := s.db.WithContext(ctx).
		Where("shop = ? AND order_id = ?", shop, orderID).
		Order("created_at DESC").
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// LatestEventByOrder returns the most recent stored event snapshot for one order.
func (s *GormStore) LatestEventByOrder(ctx context.Context, shop, orderID string) (*models.EventLog, error) {
	var event models.EventLog
	err := s.db.WithContext(ctx).
		Where("shop = ? AND order_id = ?", shop, orderID).
		Order("created_at DESC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// RecentOrderIDs returns up to limit distinct order ids with tracking
// activity since the given time.
func (s *GormStore) RecentOrderIDs(ctx context.Context, shop string, since time.Time, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.ConversionLog{}).
		Distinct("order_id").
		Where("shop = ? AND created_at >= ?", shop, since).
		Order("order_id DESC").
		Limit(limit).
		Pluck("order_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpsertSummary writes one summary row, overwriting the prior row for the
// same (shop, platform, report date).
func (s *GormStore) UpsertSummary(ctx context.Context, summary *models.ReconciliationSummary) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "shop"}, {Name: "platform"}, {Name: "report_date"},
			},
			UpdateAll: true,
		}).
		Create(summary).Error
}

// SaveVerificationRun persists one bulk consistency run.
func (s *GormStore) SaveVerificationRun(ctx context.Context, run *models.VerificationRun) error {
	return s.db.WithContext(ctx).Create(run).Error
}
