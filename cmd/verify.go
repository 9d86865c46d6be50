package cmd

import (
	"context"
	"fmt"
	"time"

	"tracking-auditor/core/config"
	"tracking-auditor/core/database"
	"tracking-auditor/core/logger"
	"tracking-auditor/core/shopify"
	"tracking-auditor/feature/consistency"
	"tracking-auditor/feature/tracking"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the verify command
	verifyOrder      string
	verifyLimit      int
	verifySampleRate float64
	verifyWindowDays int
)

// verifyCmd runs deep per-order consistency checks from the command line.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Deep-check order tracking consistency",
	Long: `Deep-check orders against their conversion attempts and pixel receipts.

Without --order, runs a bulk check over recent orders and persists the
run summary. With --order, checks a single order and prints the verdict.

Examples:
  # Bulk check recent orders
  verify

  # Bulk check with sampling
  verify --limit 500 --sample-rate 0.25

  # Deep-check one order
  verify --order 5479611433128`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyOrder, "order", "", "Check a single order id instead of running a bulk check")
	verifyCmd.Flags().IntVar(&verifyLimit, "limit", 0, "Cap on candidate orders (default 200)")
	verifyCmd.Flags().Float64Var(&verifySampleRate, "sample-rate", 0, "Fraction of candidates to check (0 checks everything)")
	verifyCmd.Flags().IntVar(&verifyWindowDays, "window-days", 0, "Candidate lookback in days (default 7)")

	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	if verifySampleRate < 0 || verifySampleRate > 1 {
		return fmt.Errorf("--sample-rate must be within [0, 1]")
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	store := tracking.NewStore(db)

	source := shopify.NewClient(cfg.Shopify)

	svc := consistency.NewService(source, store, cfg.Shopify.Credentials(), l, consistency.Options{})

	if verifyOrder != "" {
		result := svc.CheckOrder(ctx, verifyOrder)
		if result == nil {
			return fmt.Errorf("no authoritative record found for order %s", verifyOrder)
		}
		printCheckResult(l, result)
		return nil
	}

	opts := consistency.BulkOptions{
		Limit:      verifyLimit,
		SampleRate: verifySampleRate,
		Window:     time.Duration(verifyWindowDays) * 24 * time.Hour,
	}

	report, err := svc.RunBulk(ctx, opts)
	if err != nil {
		return fmt.Errorf("bulk verification failed: %w", err)
	}

	l.Info("Verification report",
		zap.String("run_id", report.RunID),
		zap.Int("candidates", report.CandidateOrders),
		zap.Int("checked", report.CheckedOrders),
		zap.Int("consistent", report.Consistent),
		zap.Int("partial", report.Partial),
		zap.Int("inconsistent", report.Inconsistent),
	)

	// Show sample of flagged orders (max 5 for logger)
	maxShow := 5
	if len(report.Flagged) < maxShow {
		maxShow = len(report.Flagged)
	}
	for i := 0; i < maxShow; i++ {
		flagged := report.Flagged[i]
		l.Info("Flagged order",
			zap.String("order_id", flagged.OrderID),
			zap.String("status", string(flagged.Status)),
			zap.Strings("issues", flagged.Issues),
		)
	}
	if len(report.Flagged) > maxShow {
		l.Info("Additional flagged orders not shown", zap.Int("count", len(report.Flagged)-maxShow))
	}

	return nil
}

// printCheckResult prints one deep-check verdict using logger.
func printCheckResult(l *zap.Logger, result *consistency.CheckResult) {
	fields := []zap.Field{
		zap.String("order_id", result.OrderID),
		zap.String("status", string(result.ConsistencyStatus)),
		zap.Bool("has_receipt", result.PixelReceipt.HasReceipt),
		zap.Int("attempts", len(result.CapiEvents)),
	}
	if result.ShopifyOrder != nil {
		fields = append(fields,
			zap.String("order_value", result.ShopifyOrder.Value.StringFixed(2)),
			zap.String("order_source", result.ShopifyOrder.Source))
	}
	if len(result.Issues) > 0 {
		fields = append(fields, zap.Strings("issues", result.Issues))
	}

	l.Info("Consistency check", fields...)
}
