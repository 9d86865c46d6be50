// Package shopify provides the authoritative order source for reconciliation.
//
// It wraps the Shopify Admin REST API behind the Source interface so that the
// reconciliation and consistency features can be tested against mock sources.
// Callers treat a fetch failure as a degraded (empty) order set; the client
// itself reports errors and never retries.
package shopify
