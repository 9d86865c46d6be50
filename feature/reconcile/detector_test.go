package reconcile

import (
	"testing"
	"time"

	"tracking-auditor/core/shopify"
	"tracking-auditor/feature/tracking/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesMatch(t *testing.T) {
	tests := []struct {
		name    string
		order   string
		tracked string
		want    bool
	}{
		{"exact match", "59.99", "59.99", true},
		{"one cent under is inside tolerance", "59.99", "59.98", true},
		{"one cent over is inside tolerance", "59.99", "60.00", true},
		{"just past tolerance", "59.99", "60.001", false},
		{"two cents off", "59.99", "60.01", false},
		{"zero matches zero", "0", "0.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := decimal.RequireFromString(tt.order)
			tracked := decimal.RequireFromString(tt.tracked)
			assert.Equal(t, tt.want, ValuesMatch(order, tracked))
		})
	}
}

func testOrder(id, value string) shopify.Order {
	return shopify.Order{
		OrderID:     id,
		OrderNumber: "#" + id,
		Value:       decimal.RequireFromString(value),
		Currency:    "USD",
		CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func testAttempt(orderID, platform, value, status string) models.ConversionLog {
	return models.ConversionLog{
		OrderID:  orderID,
		Platform: platform,
		Value:    decimal.RequireFromString(value),
		Currency: "USD",
		Status:   status,
		EventID:  "evt-" + orderID + "-" + platform,
	}
}

func TestDetectMissingAndMismatch(t *testing.T) {
	orders := []shopify.Order{
		testOrder("1", "59.99"), // tracked correctly
		testOrder("2", "80.00"), // value mismatch on meta
		testOrder("3", "20.00"), // no tracking at all
	}
	logs := []models.ConversionLog{
		testAttempt("1", "meta", "59.99", models.StatusSent),
		testAttempt("2", "meta", "75.00", models.StatusSent),
	}

	discrepancies, platforms, summary := Detect(BuildWindow(orders, logs, nil))

	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 2, summary.MatchedOrders)
	assert.InDelta(t, 2.0/3.0, summary.MatchRate, 1e-9)
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("159.99")))
	assert.True(t, summary.TrackedRevenue.Equal(decimal.RequireFromString("139.99")))

	require.Len(t, discrepancies, 2)
	byType := make(map[DiscrepancyType]Discrepancy)
	for _, d := range discrepancies {
		byType[d.Type] = d
	}

	missing := byType[DiscrepancyMissing]
	assert.Equal(t, "3", missing.OrderID)
	assert.Nil(t, missing.TrackedValue)

	mismatch := byType[DiscrepancyValueMismatch]
	assert.Equal(t, "2", mismatch.OrderID)
	require.NotNil(t, mismatch.TrackedValue)
	assert.True(t, mismatch.TrackedValue.Equal(decimal.RequireFromString("75.00")))

	require.Len(t, platforms, 1)
	assert.Equal(t, "meta", platforms[0].Platform)
	assert.Equal(t, 2, platforms[0].OrdersTracked)
	assert.Equal(t, 2, platforms[0].OrdersSent)
	assert.Equal(t, 1.0, platforms[0].SuccessRate)
}

func TestDetectReceiptAwareMissingDetails(t *testing.T) {
	orders := []shopify.Order{testOrder("1", "59.99")}
	receipts := []models.PixelReceipt{{OrderID: "1", ConsentState: models.ConsentGranted}}

	discrepancies, _, _ := Detect(BuildWindow(orders, nil, receipts))

	require.Len(t, discrepancies, 1)
	assert.Equal(t, DiscrepancyMissing, discrepancies[0].Type)
	assert.Contains(t, discrepancies[0].Details, "pixel receipt captured")
}

func TestDetectCurrencyMismatch(t *testing.T) {
	orders := []shopify.Order{testOrder("1", "59.99")}
	attempt := testAttempt("1", "google", "59.99", models.StatusSent)
	attempt.Currency = "EUR"

	discrepancies, _, _ := Detect(BuildWindow(orders, []models.ConversionLog{attempt}, nil))

	require.Len(t, discrepancies, 1)
	assert.Equal(t, DiscrepancyCurrencyMismatch, discrepancies[0].Type)
	assert.Equal(t, "EUR", discrepancies[0].TrackedCurrency)
}

func TestDetectDuplicateSends(t *testing.T) {
	orders := []shopify.Order{testOrder("1", "59.99")}
	logs := []models.ConversionLog{
		testAttempt("1", "meta", "59.99", models.StatusSent),
		testAttempt("1", "meta", "59.99", models.StatusSent),
		testAttempt("1", "tiktok", "59.99", models.StatusSent),
	}

	discrepancies, platforms, summary := Detect(BuildWindow(orders, logs, nil))

	require.Len(t, discrepancies, 1)
	assert.Equal(t, DiscrepancyDuplicate, discrepancies[0].Type)
	assert.Contains(t, discrepancies[0].Details, "2 attempts")

	assert.Equal(t, 1, summary.MatchedOrders)

	require.Len(t, platforms, 2)
	assert.Equal(t, "meta", platforms[0].Platform)
	assert.Equal(t, 1, platforms[0].DedupConflicts)
	assert.Equal(t, "tiktok", platforms[1].Platform)
	assert.Equal(t, 0, platforms[1].DedupConflicts)
}

func TestDetectFailedAttemptStillCountsAsTracked(t *testing.T) {
	// A failed attempt is tracking evidence: the send was tried, so the
	// order is not "missing", but the platform's success rate reflects it.
	orders := []shopify.Order{testOrder("1", "59.99")}
	logs := []models.ConversionLog{testAttempt("1", "meta", "59.99", models.StatusFailed)}

	discrepancies, platforms, summary := Detect(BuildWindow(orders, logs, nil))

	assert.Empty(t, discrepancies)
	assert.Equal(t, 1, summary.MatchedOrders)

	require.Len(t, platforms, 1)
	assert.Equal(t, 1, platforms[0].OrdersFailed)
	assert.Equal(t, 0.0, platforms[0].SuccessRate)
}

func TestDetectEmptyWindowIsVacuouslyConsistent(t *testing.T) {
	discrepancies, platforms, summary := Detect(BuildWindow(nil, nil, nil))

	assert.Empty(t, discrepancies)
	assert.Empty(t, platforms)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.Equal(t, 1.0, summary.MatchRate)
	assert.Equal(t, 1.0, summary.RevenueMatchRate)
}

func TestDetectZeroRevenueWindow(t *testing.T) {
	// Free orders: order counts still reconcile but the revenue rate must
	// not divide by zero.
	orders := []shopify.Order{testOrder("1", "0.00")}
	logs := []models.ConversionLog{testAttempt("1", "meta", "0.00", models.StatusSent)}

	_, _, summary := Detect(BuildWindow(orders, logs, nil))

	assert.Equal(t, 1.0, summary.MatchRate)
	assert.Equal(t, 1.0, summary.RevenueMatchRate)
	assert.True(t, summary.TotalRevenue.IsZero())
}

func TestDetectAttemptWithoutOrderIsIgnored(t *testing.T) {
	// Attempts outside the authoritative order set carry no verdict here;
	// the set-based pixel comparison covers that direction.
	logs := []models.ConversionLog{testAttempt("999", "meta", "10.00", models.StatusSent)}

	discrepancies, platforms, summary := Detect(BuildWindow(nil, logs, nil))

	assert.Empty(t, discrepancies)
	assert.Empty(t, platforms)
	assert.Equal(t, 0, summary.TotalOrders)
}
