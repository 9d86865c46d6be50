package reconcile

import (
	"tracking-auditor/core/shopify"
	"tracking-auditor/feature/tracking/models"
)

// Window holds the three record sets for one reconciliation window, indexed
// by canonical order id.
type Window struct {
	// Orders maps order id to the authoritative order snapshot.
	Orders map[string]shopify.Order
	// Attempts maps order id to all conversion attempts for that order.
	Attempts map[string][]models.ConversionLog
	// Receipts maps order id to the latest pixel receipt for that order.
	Receipts map[string]models.PixelReceipt
}

// CanonicalOrderID derives the canonical order id from a platform-specific
// opaque identifier (e.g. "gid://shopify/Order/5479611433128") by extracting
// its trailing digit run. Identifiers without a trailing digit run pass
// through unchanged so no order is silently dropped.
func CanonicalOrderID(raw string) string {
	end := len(raw)
	start := end
	for start > 0 && raw[start-1] >= '0' && raw[start-1] <= '9' {
		start--
	}
	if start == end {
		return raw
	}
	return raw[start:end]
}

// BuildWindow indexes the three record sets by canonical order id. For
// receipts, only the latest per order is kept.
func BuildWindow(orders []shopify.Order, logs []models.ConversionLog, receipts []models.PixelReceipt) *Window {
	w := &Window{
		Orders:   make(map[string]shopify.Order, len(orders)),
		Attempts: make(map[string][]models.ConversionLog),
		Receipts: make(map[string]models.PixelReceipt),
	}

	for _, order := range orders {
		w.Orders[CanonicalOrderID(order.OrderID)] = order
	}

	for _, log := range logs {
		key := CanonicalOrderID(log.OrderID)
		w.Attempts[key] = append(w.Attempts[key], log)
	}

	for _, receipt := range receipts {
		key := CanonicalOrderID(receipt.OrderID)
		if existing, ok := w.Receipts[key]; ok && !receipt.CreatedAt.After(existing.CreatedAt) {
			continue
		}
		w.Receipts[key] = receipt
	}

	return w
}
