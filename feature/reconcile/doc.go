// Package reconcile cross-references three independent records of the same
// purchase: the authoritative order, the internally logged platform-send
// attempts and the client-captured pixel receipt.
//
// The window path indexes all three sets by canonical order id, detects
// missing / value_mismatch / currency_mismatch / duplicate discrepancies,
// rolls them into severity-classified issues and persists one summary row
// per platform. The pixel path is a cheaper set-based comparison that
// isolates consent-driven gaps from delivery failures.
//
// Reconciliation is diagnostic, not transactional: data-source degradation
// shrinks the report instead of failing it.
package reconcile
