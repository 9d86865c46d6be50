package consistency

import (
	"context"
	"math"
	"time"

	"tracking-auditor/feature/tracking/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBulkLimit caps how many distinct recent orders one bulk run
	// considers.
	DefaultBulkLimit = 200
	// DefaultBulkWindow is the lookback for candidate selection.
	DefaultBulkWindow = 7 * 24 * time.Hour
)

// BulkOptions tunes candidate selection for a bulk run.
type BulkOptions struct {
	// Limit caps the candidate set; 0 means DefaultBulkLimit.
	Limit int
	// SampleRate keeps roughly this fraction of candidates (0 < rate <= 1).
	// 0 means check everything.
	SampleRate float64
	// Window is the candidate lookback; 0 means DefaultBulkWindow.
	Window time.Duration
}

// RunBulk selects a bounded, optionally down-sampled set of distinct recent
// order ids, deep-checks them and tallies the verdicts. The run is persisted
// as a VerificationRun; persistence failure degrades to a warning since the
// report itself is still valid.
func (c *Checker) RunBulk(ctx context.Context, opts BulkOptions) (*BulkReport, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultBulkLimit
	}
	window := opts.Window
	if window <= 0 {
		window = DefaultBulkWindow
	}

	startedAt := time.Now().UTC()
	since := startedAt.Add(-window)

	candidates, err := c.store.RecentOrderIDs(ctx, c.creds.Domain, since, limit)
	if err != nil {
		return nil, err
	}

	sampled := sampleIDs(candidates, opts.SampleRate)
	results := c.CheckOrders(ctx, sampled)

	report := &BulkReport{
		RunID:           uuid.NewString(),
		Shop:            c.creds.Domain,
		WindowStart:     since,
		WindowEnd:       startedAt,
		CandidateOrders: len(candidates),
		CheckedOrders:   len(results),
		Flagged:         []FlaggedOrder{},
		StartedAt:       startedAt,
	}

	for _, result := range results {
		switch result.ConsistencyStatus {
		case StatusConsistent:
			report.Consistent++
		case StatusPartial:
			report.Partial++
		case StatusInconsistent:
			report.Inconsistent++
		}
		if result.ConsistencyStatus != StatusConsistent {
			report.Flagged = append(report.Flagged, FlaggedOrder{
				OrderID: result.OrderID,
				Status:  result.ConsistencyStatus,
				Issues:  result.Issues,
			})
		}
	}

	report.FinishedAt = time.Now().UTC()

	run := &models.VerificationRun{
		RunID:         report.RunID,
		Shop:          report.Shop,
		WindowStart:   report.WindowStart,
		WindowEnd:     report.WindowEnd,
		OrdersChecked: report.CheckedOrders,
		Consistent:    report.Consistent,
		Partial:       report.Partial,
		Inconsistent:  report.Inconsistent,
		StartedAt:     report.StartedAt,
		FinishedAt:    report.FinishedAt,
	}
	if err := c.store.SaveVerificationRun(ctx, run); err != nil {
		c.logger.Warn("Failed to persist verification run",
			zap.String("run_id", report.RunID), zap.Error(err))
	}

	c.logger.Info("Bulk consistency run completed",
		zap.String("run_id", report.RunID),
		zap.Int("checked", report.CheckedOrders),
		zap.Int("consistent", report.Consistent),
		zap.Int("partial", report.Partial),
		zap.Int("inconsistent", report.Inconsistent))

	return report, nil
}

// sampleIDs keeps roughly rate*len(ids) candidates using a deterministic
// stride, preserving order. Rates outside (0, 1) keep everything.
func sampleIDs(ids []string, rate float64) []string {
	if rate <= 0 || rate >= 1 {
		return ids
	}

	stride := int(math.Round(1 / rate))
	if stride <= 1 {
		return ids
	}

	sampled := make([]string, 0, len(ids)/stride+1)
	for i := 0; i < len(ids); i += stride {
		sampled = append(sampled, ids[i])
	}
	return sampled
}
