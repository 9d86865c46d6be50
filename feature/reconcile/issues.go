package reconcile

import (
	"fmt"
	"sort"
)

// maxSampleOrders bounds the number of order ids attached to an issue.
const maxSampleOrders = 10

// missingErrorThreshold is the fraction of untracked orders above which the
// missing category escalates from warning to error.
const missingErrorThreshold = 0.10

// AggregateIssues rolls the discrepancy list into severity-classified issues.
// Categories with zero occurrences produce no issue.
func AggregateIssues(discrepancies []Discrepancy, totalOrders int) []Issue {
	byType := make(map[DiscrepancyType][]Discrepancy)
	for _, d := range discrepancies {
		byType[d.Type] = append(byType[d.Type], d)
	}

	var issues []Issue

	if missing := byType[DiscrepancyMissing]; len(missing) > 0 {
		severity := SeverityWarning
		if totalOrders > 0 && float64(len(missing))/float64(totalOrders) > missingErrorThreshold {
			severity = SeverityError
		}
		issues = append(issues, Issue{
			Severity:       severity,
			Category:       string(DiscrepancyMissing),
			Message:        fmt.Sprintf("%d of %d orders have no conversion tracking", len(missing), totalOrders),
			Count:          len(missing),
			SampleOrderIDs: sampleOrderIDs(missing),
		})
	}

	if mismatched := byType[DiscrepancyValueMismatch]; len(mismatched) > 0 {
		issues = append(issues, Issue{
			Severity:       SeverityWarning,
			Category:       string(DiscrepancyValueMismatch),
			Message:        fmt.Sprintf("%d conversion attempts reported a different value than the order", len(mismatched)),
			Count:          len(mismatched),
			SampleOrderIDs: sampleOrderIDs(mismatched),
		})
	}

	if duplicates := byType[DiscrepancyDuplicate]; len(duplicates) > 0 {
		issues = append(issues, Issue{
			Severity:       SeverityWarning,
			Category:       string(DiscrepancyDuplicate),
			Message:        fmt.Sprintf("%d orders were sent more than once to the same platform", len(duplicates)),
			Count:          len(duplicates),
			SampleOrderIDs: sampleOrderIDs(duplicates),
		})
	}

	return issues
}

// sampleOrderIDs returns up to maxSampleOrders distinct order ids, sorted for
// deterministic output.
func sampleOrderIDs(discrepancies []Discrepancy) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, maxSampleOrders)
	for _, d := range discrepancies {
		if _, ok := seen[d.OrderID]; ok {
			continue
		}
		seen[d.OrderID] = struct{}{}
		ids = append(ids, d.OrderID)
	}
	sort.Strings(ids)
	if len(ids) > maxSampleOrders {
		ids = ids[:maxSampleOrders]
	}
	return ids
}
