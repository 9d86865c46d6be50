package reconcile

import (
	"context"
	"time"

	"tracking-auditor/core/shopify"
	"tracking-auditor/core/storage"
	"tracking-auditor/feature/tracking"
	"tracking-auditor/feature/tracking/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// orderFetchLimit caps how many orders one reconciliation window loads from
// the order source.
const orderFetchLimit = 250

// Service runs window reconciliation and pixel-vs-send comparison.
type Service struct {
	source  shopify.Source
	store   tracking.Store
	archive storage.Client
	bucket  string
	creds   shopify.Credentials
	logger  *zap.Logger
}

// NewService creates a new reconcile service. The archive client may be nil,
// in which case reports are not archived.
func NewService(source shopify.Source, store tracking.Store, archive storage.Client, bucket string, creds shopify.Credentials, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		store:   store,
		archive: archive,
		bucket:  bucket,
		creds:   creds,
		logger:  logger,
	}
}

// ReconcileWindow computes the reconciliation report for one window and
// persists the per-platform summary rows. Reconciliation is diagnostic: an
// unreachable order source degrades to an empty order set rather than
// failing the report.
func (s *Service) ReconcileWindow(ctx context.Context, from, to time.Time) (*Result, error) {
	var (
		orders   []shopify.Order
		logs     []models.ConversionLog
		receipts []models.PixelReceipt
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fetched, err := s.source.FetchOrders(gctx, s.creds, from, to, orderFetchLimit)
		if err != nil {
			// Degraded: indistinguishable from a genuinely empty window,
			// which is why the warn log carries the cause.
			s.logger.Warn("Order source unavailable, reconciling against empty order set",
				zap.String("shop", s.creds.Domain),
				zap.Error(err))
			return nil
		}
		orders = fetched
		return nil
	})

	g.Go(func() error {
		var err error
		logs, err = s.store.LogsByWindow(gctx, s.creds.Domain, from, to)
		return err
	})

	g.Go(func() error {
		var err error
		receipts, err = s.store.ReceiptsByWindow(gctx, s.creds.Domain, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	window := BuildWindow(orders, logs, receipts)
	discrepancies, platforms, summary := Detect(window)
	issues := AggregateIssues(discrepancies, summary.TotalOrders)

	result := assembleResult(s.creds.Domain, from, to, summary, platforms, discrepancies, issues)

	if err := persistSummaries(ctx, s.store, result); err != nil {
		return nil, err
	}

	if s.archive != nil {
		// Best-effort: the report is still valid if archival fails.
		if err := archiveReport(ctx, s.archive, s.bucket, result); err != nil {
			s.logger.Warn("Failed to archive reconciliation report", zap.Error(err))
		}
	}

	s.logger.Info("Reconciliation window completed",
		zap.String("shop", result.Shop),
		zap.Int("orders", summary.TotalOrders),
		zap.Float64("match_rate", summary.MatchRate),
		zap.Int("discrepancies", len(discrepancies)))

	return result, nil
}

// ComparePixel runs the set-based pixel-vs-send comparison for one window.
func (s *Service) ComparePixel(ctx context.Context, from, to time.Time) (*PixelComparison, error) {
	var (
		logs     []models.ConversionLog
		receipts []models.PixelReceipt
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		logs, err = s.store.LogsByWindow(gctx, s.creds.Domain, from, to)
		return err
	})

	g.Go(func() error {
		var err error
		receipts, err = s.store.ReceiptsByWindow(gctx, s.creds.Domain, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := ComparePixelToSends(logs, receipts)
	cmp.Shop = s.creds.Domain
	cmp.WindowStart = from
	cmp.WindowEnd = to
	return cmp, nil
}
