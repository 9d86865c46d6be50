package reconcile

import (
	"sort"

	"tracking-auditor/feature/tracking/models"
)

// ComparePixelToSends is the cheap, purely set-based comparison between
// client-captured receipts and server-side sends. It classifies each order by
// which evidence exists and, for pixel-only orders, separates consent-driven
// gaps from genuine delivery failures. No value or currency comparison is
// performed.
func ComparePixelToSends(logs []models.ConversionLog, receipts []models.PixelReceipt) *PixelComparison {
	sent := make(map[string]struct{})
	for _, log := range logs {
		if log.Status != models.StatusSent {
			continue
		}
		sent[CanonicalOrderID(log.OrderID)] = struct{}{}
	}

	// Latest receipt wins for consent classification
	latest := make(map[string]models.PixelReceipt)
	for _, receipt := range receipts {
		key := CanonicalOrderID(receipt.OrderID)
		if existing, ok := latest[key]; ok && !receipt.CreatedAt.After(existing.CreatedAt) {
			continue
		}
		latest[key] = receipt
	}

	cmp := &PixelComparison{
		Both:           []string{},
		PixelOnly:      []string{},
		CapiOnly:       []string{},
		ConsentBlocked: []string{},
	}

	for orderID, receipt := range latest {
		if _, ok := sent[orderID]; ok {
			cmp.Both = append(cmp.Both, orderID)
			continue
		}
		cmp.PixelOnly = append(cmp.PixelOnly, orderID)
		if receipt.ConsentState != models.ConsentGranted {
			cmp.ConsentBlocked = append(cmp.ConsentBlocked, orderID)
		}
	}

	for orderID := range sent {
		if _, ok := latest[orderID]; !ok {
			cmp.CapiOnly = append(cmp.CapiOnly, orderID)
		}
	}

	sort.Strings(cmp.Both)
	sort.Strings(cmp.PixelOnly)
	sort.Strings(cmp.CapiOnly)
	sort.Strings(cmp.ConsentBlocked)

	return cmp
}
