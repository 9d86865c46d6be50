package cmd

import (
	"context"
	"fmt"
	"time"

	"tracking-auditor/core/config"
	"tracking-auditor/core/database"
	"tracking-auditor/core/logger"
	"tracking-auditor/core/shopify"
	"tracking-auditor/core/storage"
	"tracking-auditor/feature/reconcile"
	"tracking-auditor/feature/tracking"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	reconcileFrom  string
	reconcileTo    string
	reconcilePixel bool
)

// reconcileCmd runs one reconciliation window from the command line.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile one tracking window (report + summary rows)",
	Long: `Reconcile a shop's orders against conversion logs and pixel receipts
for one time window.

Reports missing tracking, value and currency mismatches, and duplicate
sends, then upserts the per-platform summary rows.

Examples:
  # Reconcile the last 24 hours
  reconcile

  # Reconcile an explicit window
  reconcile --from 2024-03-01T00:00:00Z --to 2024-03-02T00:00:00Z

  # Also run the set-based pixel-vs-send comparison
  reconcile --pixel`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileFrom, "from", "", "Window start (RFC3339, default now-24h)")
	reconcileCmd.Flags().StringVar(&reconcileTo, "to", "", "Window end (RFC3339, default now)")
	reconcileCmd.Flags().BoolVar(&reconcilePixel, "pixel", false, "Also run the pixel-vs-send comparison")

	RootCmd.AddCommand(reconcileCmd)
}

// resolveWindow parses the window flags, defaulting to the last 24 hours.
func resolveWindow() (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)

	if reconcileFrom != "" {
		parsed, err := time.Parse(time.RFC3339, reconcileFrom)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from timestamp: %w", err)
		}
		from = parsed
	}
	if reconcileTo != "" {
		parsed, err := time.Parse(time.RFC3339, reconcileTo)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to timestamp: %w", err)
		}
		to = parsed
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from must be before --to")
	}
	return from, to, nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	from, to, err := resolveWindow()
	if err != nil {
		return err
	}

	l.Info("Starting reconciliation",
		zap.String("shop", cfg.Shopify.Domain),
		zap.Time("from", from),
		zap.Time("to", to))

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	store := tracking.NewStore(db)

	// Connect to the report archive; reconciliation still works without it
	var archive storage.Client
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Report archive unavailable, reports will not be stored", zap.Error(err))
	} else {
		archive = client
	}

	source := shopify.NewClient(cfg.Shopify)

	svc := reconcile.NewService(source, store, archive, cfg.Storage.Bucket, cfg.Shopify.Credentials(), l)

	result, err := svc.ReconcileWindow(ctx, from, to)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	printReconcileReport(l, result)

	if reconcilePixel {
		cmp, err := svc.ComparePixel(ctx, from, to)
		if err != nil {
			return fmt.Errorf("pixel comparison failed: %w", err)
		}
		l.Info("Pixel comparison",
			zap.Int("both", len(cmp.Both)),
			zap.Int("pixel_only", len(cmp.PixelOnly)),
			zap.Int("capi_only", len(cmp.CapiOnly)),
			zap.Int("consent_blocked", len(cmp.ConsentBlocked)))
	}

	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, result *reconcile.Result) {
	s := result.Summary

	l.Info("Reconciliation report",
		zap.Int("total_orders", s.TotalOrders),
		zap.Int("matched_orders", s.MatchedOrders),
		zap.Float64("match_rate", s.MatchRate),
		zap.String("total_revenue", s.TotalRevenue.StringFixed(2)),
		zap.String("tracked_revenue", s.TrackedRevenue.StringFixed(2)),
		zap.Float64("revenue_match_rate", s.RevenueMatchRate),
	)

	for _, ps := range result.Platforms {
		l.Info("Platform stats",
			zap.String("platform", ps.Platform),
			zap.Int("orders_tracked", ps.OrdersTracked),
			zap.Int("orders_sent", ps.OrdersSent),
			zap.Int("orders_failed", ps.OrdersFailed),
			zap.Float64("success_rate", ps.SuccessRate),
			zap.Int("dedup_conflicts", ps.DedupConflicts),
		)
	}

	for _, issue := range result.Issues {
		l.Info("Issue",
			zap.String("severity", string(issue.Severity)),
			zap.String("category", issue.Category),
			zap.String("message", issue.Message),
			zap.Strings("sample_order_ids", issue.SampleOrderIDs),
		)
	}

	// Show sample of discrepancies (max 5 for logger)
	maxShow := 5
	if len(result.Discrepancies) < maxShow {
		maxShow = len(result.Discrepancies)
	}
	for i := 0; i < maxShow; i++ {
		d := result.Discrepancies[i]
		l.Info("Sample discrepancy",
			zap.String("type", string(d.Type)),
			zap.String("order_id", d.OrderID),
			zap.String("details", d.Details),
		)
	}
	if len(result.Discrepancies) > maxShow {
		l.Info("Additional discrepancies not shown", zap.Int("count", len(result.Discrepancies)-maxShow))
	}
}
