package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tracking-auditor/core/storage"
	"tracking-auditor/feature/tracking"
	"tracking-auditor/feature/tracking/models"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// assembleResult composes the window-scoped reconciliation report.
func assembleResult(shop string, from, to time.Time, summary Summary, platforms []PlatformStats, discrepancies []Discrepancy, issues []Issue) *Result {
	return &Result{
		Shop:          shop,
		WindowStart:   from,
		WindowEnd:     to,
		GeneratedAt:   time.Now().UTC(),
		Summary:       summary,
		Platforms:     platforms,
		Discrepancies: discrepancies,
		Issues:        issues,
	}
}

// persistSummaries upserts one summary row per platform present in the
// result, keyed by (shop, platform, report date). Re-running the same window
// overwrites the prior rows.
func persistSummaries(ctx context.Context, store tracking.Store, result *Result) error {
	reportDate := result.WindowEnd.UTC().Truncate(24 * time.Hour)

	for _, ps := range result.Platforms {
		summary := &models.ReconciliationSummary{
			Shop:                   result.Shop,
			Platform:               ps.Platform,
			ReportDate:             reportDate,
			OrdersTotal:            result.Summary.TotalOrders,
			RevenueTotal:           result.Summary.TotalRevenue,
			OrdersSent:             ps.OrdersSent,
			RevenueSent:            ps.RevenueTracked,
			OrderDiscrepancyRate:   1 - result.Summary.MatchRate,
			RevenueDiscrepancyRate: 1 - result.Summary.RevenueMatchRate,
		}
		if err := store.UpsertSummary(ctx, summary); err != nil {
			return fmt.Errorf("failed to upsert summary for %s: %w", ps.Platform, err)
		}
	}
	return nil
}

// archiveObjectName returns the storage key for one report.
func archiveObjectName(shop string, windowEnd time.Time) string {
	return fmt.Sprintf("reports/%s/%s.json", shop, windowEnd.UTC().Format("2006-01-02"))
}

// archiveReport serializes the report and stores it in the archive bucket.
func archiveReport(ctx context.Context, client storage.Client, bucket string, result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	objectName := archiveObjectName(result.Shop, result.WindowEnd)
	_, err = client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive report %s: %w", objectName, err)
	}
	return nil
}
