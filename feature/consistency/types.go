package consistency

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the per-order consistency verdict.
type Status string

const (
	// StatusConsistent means a valid receipt and only sent, matching attempts.
	StatusConsistent Status = "consistent"
	// StatusPartial means tracking evidence exists on both sides but at
	// least one attempt failed or mismatched.
	StatusPartial Status = "partial"
	// StatusInconsistent means the receipt or the attempts are missing or
	// structurally invalid.
	StatusInconsistent Status = "inconsistent"
)

// OrderSnapshot is the authoritative order view used by one deep check,
// obtained live from the order source or from the stored event snapshot.
type OrderSnapshot struct {
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	// ItemCount is best-effort from stored event data; 0 when unknown.
	ItemCount int `json:"item_count"`
	// Source is "live" or "snapshot".
	Source string `json:"source"`
}

// ReceiptSummary summarizes the pixel receipt side of one deep check.
type ReceiptSummary struct {
	HasReceipt    bool `json:"has_receipt"`
	PayloadValid  bool `json:"payload_valid"`
	ValueMatch    bool `json:"value_match"`
	CurrencyMatch bool `json:"currency_match"`
}

// AttemptCheck is the verdict for one conversion attempt.
type AttemptCheck struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`

	ValueMatch    bool `json:"value_match"`
	CurrencyMatch bool `json:"currency_match"`

	// MissingEventID flags attempts without a dedup identifier.
	MissingEventID bool `json:"missing_event_id"`
	// LateSend flags attempts sent more than an hour after order creation.
	LateSend bool `json:"late_send"`
	// DuplicateSend flags attempts on a platform that received more than one.
	DuplicateSend bool `json:"duplicate_send"`
}

// CheckResult is the outcome of one deep per-order consistency check across
// all three record sources.
type CheckResult struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number,omitempty"`

	ShopifyOrder *OrderSnapshot `json:"shopify_order"`
	PixelReceipt ReceiptSummary `json:"pixel_receipt"`
	CapiEvents   []AttemptCheck `json:"capi_events"`

	ConsistencyStatus Status   `json:"consistency_status"`
	Issues            []string `json:"issues"`
}

// FlaggedOrder is one non-consistent order in a bulk report.
type FlaggedOrder struct {
	OrderID string   `json:"order_id"`
	Status  Status   `json:"status"`
	Issues  []string `json:"issues"`
}

// BulkReport is the outcome of one bulk consistency run.
type BulkReport struct {
	RunID string `json:"run_id"`
	Shop  string `json:"shop"`

	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// CandidateOrders is the number of distinct orders selected before
	// sampling; CheckedOrders is how many produced a result.
	CandidateOrders int `json:"candidate_orders"`
	CheckedOrders   int `json:"checked_orders"`

	Consistent   int `json:"consistent"`
	Partial      int `json:"partial"`
	Inconsistent int `json:"inconsistent"`

	Flagged []FlaggedOrder `json:"flagged"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
