package consistency

import (
	"context"

	"tracking-auditor/core/shopify"
	"tracking-auditor/feature/tracking"

	"go.uber.org/zap"
)

// Service exposes deep consistency checks to handlers and commands.
type Service struct {
	checker *Checker
	logger  *zap.Logger
}

// NewService creates a new consistency service.
func NewService(source shopify.Source, store tracking.Store, creds shopify.Credentials, logger *zap.Logger, opts Options) *Service {
	return &Service{
		checker: NewChecker(source, store, creds, logger, opts),
		logger:  logger,
	}
}

// CheckOrder runs one deep check. It returns nil when the order yields no
// result (no authoritative snapshot, timeout or store failure).
func (s *Service) CheckOrder(ctx context.Context, orderID string) *CheckResult {
	results := s.checker.CheckOrders(ctx, []string{orderID})
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// RunBulk runs a bulk consistency check over recent orders.
func (s *Service) RunBulk(ctx context.Context, opts BulkOptions) (*BulkReport, error) {
	return s.checker.RunBulk(ctx, opts)
}
