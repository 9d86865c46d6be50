// Package consistency runs deep per-order checks that cross-reference the
// authoritative order record, the logged conversion attempts and the pixel
// receipt for a single order, with bounded concurrency for bulk runs.
package consistency
