package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyType classifies a detected mismatch between authoritative and
// tracked records for one order.
type DiscrepancyType string

const (
	// DiscrepancyMissing marks an order with no conversion attempt at all.
	DiscrepancyMissing DiscrepancyType = "missing"
	// DiscrepancyValueMismatch marks an attempt whose value differs from the
	// order value by more than the tolerance.
	DiscrepancyValueMismatch DiscrepancyType = "value_mismatch"
	// DiscrepancyCurrencyMismatch marks an attempt with a different currency code.
	DiscrepancyCurrencyMismatch DiscrepancyType = "currency_mismatch"
	// DiscrepancyDuplicate marks an order with more than one attempt on the
	// same platform.
	DiscrepancyDuplicate DiscrepancyType = "duplicate"
)

// Discrepancy is a single detected mismatch for one order.
type Discrepancy struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`

	ShopifyValue    decimal.Decimal `json:"shopify_value"`
	ShopifyCurrency string          `json:"shopify_currency"`

	// TrackedValue is the value of the conflicting attempt; nil for missing
	// discrepancies where no attempt exists.
	TrackedValue    *decimal.Decimal `json:"tracked_value,omitempty"`
	TrackedCurrency string           `json:"tracked_currency,omitempty"`

	Type    DiscrepancyType `json:"type"`
	Details string          `json:"details"`
}

// PlatformStats aggregates tracking outcomes for one advertising platform
// across the reconciliation window.
type PlatformStats struct {
	Platform       string          `json:"platform"`
	OrdersTracked  int             `json:"orders_tracked"`
	OrdersSent     int             `json:"orders_sent"`
	OrdersFailed   int             `json:"orders_failed"`
	SuccessRate    float64         `json:"success_rate"`
	RevenueTracked decimal.Decimal `json:"revenue_tracked"`
	DedupConflicts int             `json:"dedup_conflicts"`
}

// Severity grades a reconciliation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a severity-classified rollup of one discrepancy category.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Count    int      `json:"count"`
	// SampleOrderIDs lists up to 10 affected orders for triage.
	SampleOrderIDs []string `json:"sample_order_ids,omitempty"`
}

// Summary holds the aggregate match figures for one reconciliation window.
type Summary struct {
	TotalOrders   int     `json:"total_orders"`
	MatchedOrders int     `json:"matched_orders"`
	MatchRate     float64 `json:"match_rate"`

	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TrackedRevenue   decimal.Decimal `json:"tracked_revenue"`
	RevenueMatchRate float64         `json:"revenue_match_rate"`
}

// Result is the window-scoped reconciliation report.
type Result struct {
	Shop        string    `json:"shop"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	GeneratedAt time.Time `json:"generated_at"`

	Summary       Summary         `json:"summary"`
	Platforms     []PlatformStats `json:"platforms"`
	Discrepancies []Discrepancy   `json:"discrepancies"`
	Issues        []Issue         `json:"issues"`
}

// PixelComparison is the set-based pixel-vs-send report. It classifies each
// order by which tracking evidence exists, without value comparison.
type PixelComparison struct {
	Shop        string    `json:"shop"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// Both lists orders with a pixel receipt and at least one sent attempt.
	Both []string `json:"both"`
	// PixelOnly lists orders with a receipt but no sent attempt.
	PixelOnly []string `json:"pixel_only"`
	// CapiOnly lists orders with a sent attempt but no receipt.
	CapiOnly []string `json:"capi_only"`
	// ConsentBlocked is the subset of PixelOnly whose receipt's consent
	// state denies marketing use: a compliance gap, not a delivery failure.
	ConsentBlocked []string `json:"consent_blocked"`
}
