package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion log statuses.
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusPending = "pending"
)

// Pixel receipt consent states.
const (
	ConsentGranted       = "granted"
	ConsentAnalyticsOnly = "analytics_only"
	ConsentDenied        = "denied"
)

// ConversionLog is one internally logged attempt to report a purchase event
// to an advertising platform (meta, tiktok, google, ...).
type ConversionLog struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Shop     string `gorm:"size:255;index:idx_conversion_shop_created" json:"shop"`
	OrderID  string `gorm:"size:64;index:idx_conversion_order" json:"order_id"`
	Platform string `gorm:"size:32" json:"platform"`

	Value    decimal.Decimal `gorm:"type:decimal(12,2)" json:"value"`
	Currency string          `gorm:"size:8" json:"currency"`

	// Status is sent, failed or pending.
	Status string `gorm:"size:16" json:"status"`
	// EventID is the dedup identifier passed to the platform. May be empty
	// for events captured before dedup ids were introduced.
	EventID string `gorm:"size:128" json:"event_id"`

	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `gorm:"index:idx_conversion_shop_created" json:"created_at"`
}

// TableName maps the model to the conversion_logs table.
func (ConversionLog) TableName() string {
	return "conversion_logs"
}

// PixelReceipt is a client-side captured record of a tracking event,
// independent of any server-side send attempt.
type PixelReceipt struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Shop    string `gorm:"size:255;index:idx_receipt_shop_created" json:"shop"`
	OrderID string `gorm:"size:64;index:idx_receipt_order" json:"order_id"`

	EventType string          `gorm:"size:64" json:"event_type"`
	Value     decimal.Decimal `gorm:"type:decimal(12,2)" json:"value"`
	Currency  string          `gorm:"size:8" json:"currency"`

	// ConsentState is granted, analytics_only or denied.
	ConsentState string `gorm:"size:32" json:"consent_state"`
	// Payload is the raw event payload as captured by the pixel.
	Payload string `gorm:"type:json" json:"payload"`

	CreatedAt time.Time `gorm:"index:idx_receipt_shop_created" json:"created_at"`
}

// TableName maps the model to the pixel_receipts table.
func (PixelReceipt) TableName() string {
	return "pixel_receipts"
}

// EventLog is a stored event snapshot from the ingestion pipeline. It serves
// as the fallback authoritative snapshot when a live order fetch is not
// available, and carries the item count when the client reported one.
type EventLog struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Shop    string `gorm:"size:255;index:idx_event_shop_order" json:"shop"`
	OrderID string `gorm:"size:64;index:idx_event_shop_order" json:"order_id"`

	EventName string          `gorm:"size:64" json:"event_name"`
	Value     decimal.Decimal `gorm:"type:decimal(12,2)" json:"value"`
	Currency  string          `gorm:"size:8" json:"currency"`
	ItemCount int             `json:"item_count"`
	Payload   string          `gorm:"type:json" json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName maps the model to the event_logs table.
func (EventLog) TableName() string {
	return "event_logs"
}

// ReconciliationSummary is the per-(shop, platform, date) summary row written
// after a reconciliation run. Re-running the same window overwrites the row.
type ReconciliationSummary struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Shop       string    `gorm:"size:255;uniqueIndex:idx_summary_key" json:"shop"`
	Platform   string    `gorm:"size:32;uniqueIndex:idx_summary_key" json:"platform"`
	ReportDate time.Time `gorm:"type:date;uniqueIndex:idx_summary_key" json:"report_date"`

	OrdersTotal  int             `json:"orders_total"`
	RevenueTotal decimal.Decimal `gorm:"type:decimal(14,2)" json:"revenue_total"`
	OrdersSent   int             `json:"orders_sent"`
	RevenueSent  decimal.Decimal `gorm:"type:decimal(14,2)" json:"revenue_sent"`

	// Discrepancy fractions are stored inverted (1 - matchRate) so trend
	// queries can sort by "worst first".
	OrderDiscrepancyRate   float64 `json:"order_discrepancy_rate"`
	RevenueDiscrepancyRate float64 `json:"revenue_discrepancy_rate"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName maps the model to the reconciliation_summaries table.
func (ReconciliationSummary) TableName() string {
	return "reconciliation_summaries"
}

// VerificationRun records one bulk consistency run for retention and trend
// inspection.
type VerificationRun struct {
	RunID string `gorm:"primaryKey;size:36" json:"run_id"`
	Shop  string `gorm:"size:255;index" json:"shop"`

	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	OrdersChecked int `json:"orders_checked"`
	Consistent    int `json:"consistent"`
	Partial       int `json:"partial"`
	Inconsistent  int `json:"inconsistent"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// TableName maps the model to the verification_runs table.
func (VerificationRun) TableName() string {
	return "verification_runs"
}
