package consistency

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"tracking-auditor/core/shopify"
	"tracking-auditor/core/utils"
	"tracking-auditor/feature/reconcile"
	"tracking-auditor/feature/tracking"
	"tracking-auditor/feature/tracking/models"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	// DefaultMaxConcurrent is the number of deep checks in flight per chunk.
	DefaultMaxConcurrent = 5
	// DefaultTimeout is the budget for one per-order deep check.
	DefaultTimeout = 10 * time.Second

	// lateSendThreshold is how long after order creation a send counts as a
	// timing anomaly.
	lateSendThreshold = time.Hour
)

// Options tunes the checker's concurrency model.
type Options struct {
	// MaxConcurrent bounds the number of simultaneous deep checks.
	MaxConcurrent int
	// Timeout is the per-order check budget.
	Timeout time.Duration
}

// Checker runs deep, timeout-bounded, cancellable per-order verification
// across the order source, conversion logs and pixel receipts.
type Checker struct {
	source shopify.Source
	store  tracking.Store
	creds  shopify.Credentials
	logger *zap.Logger

	maxConcurrent int
	timeout       time.Duration
}

// NewChecker creates a checker. The order source may be nil, in which case
// authoritative snapshots come from stored event data only.
func NewChecker(source shopify.Source, store tracking.Store, creds shopify.Credentials, logger *zap.Logger, opts Options) *Checker {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Checker{
		source:        source,
		store:         store,
		creds:         creds,
		logger:        logger,
		maxConcurrent: maxConcurrent,
		timeout:       timeout,
	}
}

// CheckOrders runs one deep check per candidate order in sequential chunks of
// maxConcurrent. An order whose check times out or fails is omitted from the
// output, never mislabeled. Results are sorted by order id.
func (c *Checker) CheckOrders(ctx context.Context, orderIDs []string) []CheckResult {
	results := make([]CheckResult, 0, len(orderIDs))
	var mu sync.Mutex

	for start := 0; start < len(orderIDs); start += c.maxConcurrent {
		end := start + c.maxConcurrent
		if end > len(orderIDs) {
			end = len(orderIDs)
		}

		var wg sync.WaitGroup
		for _, orderID := range orderIDs[start:end] {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()

				octx, cancel := context.WithTimeout(ctx, c.timeout)
				defer cancel()

				result, err := c.checkOrder(octx, id)
				if err != nil {
					if errors.Is(err, context.DeadlineExceeded) {
						c.logger.Warn("Consistency check timed out, order omitted",
							zap.String("order_id", id),
							zap.Duration("timeout", c.timeout))
					} else {
						c.logger.Warn("Consistency check failed, order omitted",
							zap.String("order_id", id),
							zap.Error(err))
					}
					return
				}
				if result == nil {
					// No authoritative snapshot: excluded, not inconsistent.
					return
				}

				mu.Lock()
				results = append(results, *result)
				mu.Unlock()
			}(orderID)
		}
		wg.Wait()
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].OrderID < results[j].OrderID
	})
	return results
}

// checkOrder performs the deep check for one order. The context doubles as
// the cooperative cancellation token: it is checked before and after every
// store or source call, so a cancelled check stops promptly but an already
// dispatched remote call is not aborted at the transport layer.
func (c *Checker) checkOrder(ctx context.Context, orderID string) (*CheckResult, error) {
	orderID = reconcile.CanonicalOrderID(orderID)

	result := &CheckResult{
		OrderID:    orderID,
		CapiEvents: []AttemptCheck{},
		Issues:     []string{},
	}

	// 1. Authoritative snapshot: live fetch preferred, stored snapshot fallback.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snapshot *OrderSnapshot
	if c.source != nil {
		order, err := c.source.FetchOrder(ctx, c.creds, orderID)
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if err != nil {
			c.logger.Debug("Live order fetch failed, falling back to stored snapshot",
				zap.String("order_id", orderID), zap.Error(err))
		} else if order != nil {
			snapshot = &OrderSnapshot{
				Value:     order.Value,
				Currency:  order.Currency,
				CreatedAt: order.CreatedAt,
				Source:    "live",
			}
			result.OrderNumber = order.OrderNumber
		}
	}

	// 3. Stored event snapshot: authoritative fallback and item count source.
	event, err := c.store.LatestEventByOrder(ctx, c.creds.Domain, orderID)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		if snapshot == nil {
			return nil, err
		}
		// Item count is best-effort; the live snapshot carries the check.
		event = nil
	}
	if event != nil {
		if snapshot == nil {
			snapshot = &OrderSnapshot{
				Value:     event.Value,
				Currency:  event.Currency,
				CreatedAt: event.CreatedAt,
				Source:    "snapshot",
			}
		}
		snapshot.ItemCount = event.ItemCount
	}

	// 2. No authoritative snapshot at all: the order yields no result.
	if snapshot == nil {
		return nil, nil
	}
	result.ShopifyOrder = snapshot

	// 4. Latest pixel receipt and payload validation.
	receipt, err := c.store.LatestReceiptByOrder(ctx, c.creds.Domain, orderID)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}

	if receipt == nil {
		result.Issues = append(result.Issues, "no pixel receipt captured for this order")
	} else {
		result.PixelReceipt.HasReceipt = true
		result.PixelReceipt.PayloadValid = validatePayload(receipt.Payload)
		if !result.PixelReceipt.PayloadValid {
			result.Issues = append(result.Issues, "pixel receipt payload is missing event name or event time")
		}
		result.PixelReceipt.ValueMatch = reconcile.ValuesMatch(snapshot.Value, receipt.Value)
		result.PixelReceipt.CurrencyMatch = receipt.Currency == snapshot.Currency
		if !result.PixelReceipt.ValueMatch {
			result.Issues = append(result.Issues,
				fmt.Sprintf("pixel value %s differs from order value %s",
					receipt.Value.StringFixed(2), snapshot.Value.StringFixed(2)))
		}
		if !result.PixelReceipt.CurrencyMatch {
			result.Issues = append(result.Issues,
				fmt.Sprintf("pixel currency %s differs from order currency %s",
					receipt.Currency, snapshot.Currency))
		}
	}

	// 5. Conversion attempts.
	attempts, err := c.store.LogsByOrder(ctx, c.creds.Domain, orderID)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}

	if len(attempts) == 0 {
		result.Issues = append(result.Issues, "no conversion attempts logged for this order")
	}

	perPlatform := make(map[string]int)
	for _, attempt := range attempts {
		perPlatform[attempt.Platform]++
	}

	for _, attempt := range attempts {
		check := AttemptCheck{
			Platform:      attempt.Platform,
			Status:        attempt.Status,
			ValueMatch:    reconcile.ValuesMatch(snapshot.Value, attempt.Value),
			CurrencyMatch: attempt.Currency == snapshot.Currency,
			DuplicateSend: perPlatform[attempt.Platform] > 1,
		}

		if attempt.EventID == "" {
			check.MissingEventID = true
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s attempt has no dedup event id", attempt.Platform))
		}
		if attempt.SentAt != nil && attempt.SentAt.Sub(snapshot.CreatedAt) > lateSendThreshold {
			check.LateSend = true
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s attempt was sent %s after order creation",
					attempt.Platform, attempt.SentAt.Sub(snapshot.CreatedAt).Round(time.Minute)))
		}
		if !check.ValueMatch {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s attempt value %s differs from order value %s",
					attempt.Platform, attempt.Value.StringFixed(2), snapshot.Value.StringFixed(2)))
		}
		if !check.CurrencyMatch {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s attempt currency %s differs from order currency %s",
					attempt.Platform, attempt.Currency, snapshot.Currency))
		}
		if attempt.Status != models.StatusSent {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s attempt is in status %q", attempt.Platform, attempt.Status))
		}

		result.CapiEvents = append(result.CapiEvents, check)
	}

	for platform, count := range perPlatform {
		if count > 1 {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%d attempts recorded for %s", count, platform))
		}
	}

	// 6. Verdict.
	result.ConsistencyStatus = deriveStatus(result)

	return result, nil
}

// deriveStatus derives the per-order verdict from the collected evidence.
func deriveStatus(result *CheckResult) Status {
	if !result.PixelReceipt.HasReceipt || !result.PixelReceipt.PayloadValid || len(result.CapiEvents) == 0 {
		return StatusInconsistent
	}

	for _, check := range result.CapiEvents {
		if check.Status != models.StatusSent || !check.ValueMatch || !check.CurrencyMatch {
			return StatusPartial
		}
	}

	return StatusConsistent
}

// validatePayload checks the structural completeness of a pixel payload: it
// must carry an event name and an event time.
func validatePayload(payload string) bool {
	if payload == "" {
		return false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return false
	}

	name := utils.ToString(fields["event_name"])
	if name == "" {
		name = utils.ToString(fields["name"])
	}

	eventTime := utils.ToString(fields["event_time"])
	if eventTime == "" {
		eventTime = utils.ToString(fields["timestamp"])
	}

	return name != "" && eventTime != ""
}
