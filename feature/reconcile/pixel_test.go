package reconcile

import (
	"testing"
	"time"

	"tracking-auditor/feature/tracking/models"

	"github.com/stretchr/testify/assert"
)

func TestComparePixelToSends(t *testing.T) {
	logs := []models.ConversionLog{
		{OrderID: "1", Platform: "meta", Status: models.StatusSent},
		{OrderID: "2", Platform: "meta", Status: models.StatusFailed}, // failed does not count as sent
		{OrderID: "4", Platform: "tiktok", Status: models.StatusSent},
	}
	receipts := []models.PixelReceipt{
		{OrderID: "1", ConsentState: models.ConsentGranted},
		{OrderID: "2", ConsentState: models.ConsentGranted},
		{OrderID: "3", ConsentState: models.ConsentDenied},
	}

	cmp := ComparePixelToSends(logs, receipts)

	assert.Equal(t, []string{"1"}, cmp.Both)
	assert.Equal(t, []string{"2", "3"}, cmp.PixelOnly)
	assert.Equal(t, []string{"4"}, cmp.CapiOnly)
	assert.Equal(t, []string{"3"}, cmp.ConsentBlocked)
}

func TestComparePixelConsentUsesLatestReceipt(t *testing.T) {
	receipts := []models.PixelReceipt{
		{OrderID: "1", ConsentState: models.ConsentGranted, CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{OrderID: "1", ConsentState: models.ConsentDenied, CreatedAt: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)},
	}

	cmp := ComparePixelToSends(nil, receipts)

	assert.Equal(t, []string{"1"}, cmp.PixelOnly)
	assert.Equal(t, []string{"1"}, cmp.ConsentBlocked)
}

func TestComparePixelAnalyticsOnlyIsConsentBlocked(t *testing.T) {
	receipts := []models.PixelReceipt{
		{OrderID: "1", ConsentState: models.ConsentAnalyticsOnly},
	}

	cmp := ComparePixelToSends(nil, receipts)

	assert.Equal(t, []string{"1"}, cmp.ConsentBlocked)
}

func TestComparePixelEmptyInputs(t *testing.T) {
	cmp := ComparePixelToSends(nil, nil)

	assert.Empty(t, cmp.Both)
	assert.Empty(t, cmp.PixelOnly)
	assert.Empty(t, cmp.CapiOnly)
	assert.Empty(t, cmp.ConsentBlocked)
}
