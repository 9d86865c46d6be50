package reconcile

import (
	"fmt"
	"sort"

	"tracking-auditor/feature/tracking/models"

	"github.com/shopspring/decimal"
)

// valueTolerance is the absolute tolerance for monetary comparison. Platform
// clients round independently, so differences up to one cent are expected.
var valueTolerance = decimal.New(1, -2)

// ValuesMatch reports whether a tracked value matches an order value within
// the absolute tolerance. The boundary is inclusive: a difference of exactly
// 0.01 still matches.
func ValuesMatch(orderValue, trackedValue decimal.Decimal) bool {
	return orderValue.Sub(trackedValue).Abs().LessThanOrEqual(valueTolerance)
}

// Detect compares the matched record sets and returns the discrepancy list,
// per-platform statistics (sorted by platform name) and the window summary.
func Detect(w *Window) ([]Discrepancy, []PlatformStats, Summary) {
	discrepancies := make([]Discrepancy, 0)
	stats := make(map[string]*PlatformStats)

	summary := Summary{
		TotalOrders:    len(w.Orders),
		TotalRevenue:   decimal.Zero,
		TrackedRevenue: decimal.Zero,
	}

	platformFor := func(name string) *PlatformStats {
		ps, ok := stats[name]
		if !ok {
			ps = &PlatformStats{Platform: name, RevenueTracked: decimal.Zero}
			stats[name] = ps
		}
		return ps
	}

	for orderID, order := range w.Orders {
		summary.TotalRevenue = summary.TotalRevenue.Add(order.Value)

		attempts := w.Attempts[orderID]
		if len(attempts) == 0 {
			details := "no tracking evidence found for this order"
			if _, hasReceipt := w.Receipts[orderID]; hasReceipt {
				// A receipt without a send points at the delivery side,
				// not the client side.
				details = "pixel receipt captured but no platform send was attempted"
			}
			discrepancies = append(discrepancies, Discrepancy{
				OrderID:         orderID,
				OrderNumber:     order.OrderNumber,
				ShopifyValue:    order.Value,
				ShopifyCurrency: order.Currency,
				Type:            DiscrepancyMissing,
				Details:         details,
			})
			continue
		}

		summary.MatchedOrders++
		summary.TrackedRevenue = summary.TrackedRevenue.Add(order.Value)

		perPlatform := make(map[string]int)
		for _, attempt := range attempts {
			ps := platformFor(attempt.Platform)
			ps.OrdersTracked++
			ps.RevenueTracked = ps.RevenueTracked.Add(attempt.Value)
			perPlatform[attempt.Platform]++

			switch attempt.Status {
			case models.StatusSent:
				ps.OrdersSent++
			case models.StatusFailed:
				ps.OrdersFailed++
			}

			if !ValuesMatch(order.Value, attempt.Value) {
				tracked := attempt.Value
				discrepancies = append(discrepancies, Discrepancy{
					OrderID:         orderID,
					OrderNumber:     order.OrderNumber,
					ShopifyValue:    order.Value,
					ShopifyCurrency: order.Currency,
					TrackedValue:    &tracked,
					TrackedCurrency: attempt.Currency,
					Type:            DiscrepancyValueMismatch,
					Details: fmt.Sprintf("%s attempt value %s differs from order value %s",
						attempt.Platform, attempt.Value.StringFixed(2), order.Value.StringFixed(2)),
				})
			}

			if attempt.Currency != order.Currency {
				tracked := attempt.Value
				discrepancies = append(discrepancies, Discrepancy{
					OrderID:         orderID,
					OrderNumber:     order.OrderNumber,
					ShopifyValue:    order.Value,
					ShopifyCurrency: order.Currency,
					TrackedValue:    &tracked,
					TrackedCurrency: attempt.Currency,
					Type:            DiscrepancyCurrencyMismatch,
					Details: fmt.Sprintf("%s attempt currency %s differs from order currency %s",
						attempt.Platform, attempt.Currency, order.Currency),
				})
			}
		}

		for platform, count := range perPlatform {
			if count <= 1 {
				continue
			}
			platformFor(platform).DedupConflicts++
			discrepancies = append(discrepancies, Discrepancy{
				OrderID:         orderID,
				OrderNumber:     order.OrderNumber,
				ShopifyValue:    order.Value,
				ShopifyCurrency: order.Currency,
				Type:            DiscrepancyDuplicate,
				Details:         fmt.Sprintf("%d attempts sent to %s for the same order", count, platform),
			})
		}
	}

	// An empty window is vacuously consistent: a zero rate here would read
	// as total tracking failure when there is simply nothing to reconcile.
	if summary.TotalOrders == 0 {
		summary.MatchRate = 1
		summary.RevenueMatchRate = 1
	} else {
		summary.MatchRate = float64(summary.MatchedOrders) / float64(summary.TotalOrders)
		if summary.TotalRevenue.IsZero() {
			summary.RevenueMatchRate = 1
		} else {
			summary.RevenueMatchRate = summary.TrackedRevenue.Div(summary.TotalRevenue).InexactFloat64()
		}
	}

	platforms := make([]PlatformStats, 0, len(stats))
	for _, ps := range stats {
		if ps.OrdersTracked > 0 {
			ps.SuccessRate = float64(ps.OrdersSent) / float64(ps.OrdersTracked)
		}
		platforms = append(platforms, *ps)
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i].Platform < platforms[j].Platform
	})

	return discrepancies, platforms, summary
}
