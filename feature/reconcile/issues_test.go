package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingDiscrepancies(n int) []Discrepancy {
	out := make([]Discrepancy, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Discrepancy{
			OrderID: fmt.Sprintf("%03d", i+1),
			Type:    DiscrepancyMissing,
		})
	}
	return out
}

func TestAggregateIssuesMissingSeverity(t *testing.T) {
	tests := []struct {
		name        string
		missing     int
		totalOrders int
		want        Severity
	}{
		{"under threshold is warning", 5, 100, SeverityWarning},
		{"at threshold is warning", 10, 100, SeverityWarning},
		{"over threshold is error", 11, 100, SeverityError},
		{"all missing is error", 3, 3, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := AggregateIssues(missingDiscrepancies(tt.missing), tt.totalOrders)

			require.Len(t, issues, 1)
			assert.Equal(t, tt.want, issues[0].Severity)
			assert.Equal(t, string(DiscrepancyMissing), issues[0].Category)
			assert.Equal(t, tt.missing, issues[0].Count)
		})
	}
}

func TestAggregateIssuesSampleCap(t *testing.T) {
	issues := AggregateIssues(missingDiscrepancies(25), 100)

	require.Len(t, issues, 1)
	assert.Equal(t, 25, issues[0].Count)
	assert.Len(t, issues[0].SampleOrderIDs, 10)
	assert.Equal(t, "001", issues[0].SampleOrderIDs[0])
}

func TestAggregateIssuesDeduplicatesSamples(t *testing.T) {
	discrepancies := []Discrepancy{
		{OrderID: "1", Type: DiscrepancyValueMismatch},
		{OrderID: "1", Type: DiscrepancyValueMismatch},
		{OrderID: "2", Type: DiscrepancyValueMismatch},
	}

	issues := AggregateIssues(discrepancies, 10)

	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Count)
	assert.Equal(t, []string{"1", "2"}, issues[0].SampleOrderIDs)
}

func TestAggregateIssuesEmptyCategoriesProduceNoIssue(t *testing.T) {
	assert.Empty(t, AggregateIssues(nil, 100))

	issues := AggregateIssues([]Discrepancy{{OrderID: "1", Type: DiscrepancyDuplicate}}, 100)
	require.Len(t, issues, 1)
	assert.Equal(t, string(DiscrepancyDuplicate), issues[0].Category)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}
