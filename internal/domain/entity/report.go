// Package entity defines the core business entities for the domain layer.
package entity

// Granularity is the unit of a report period.
type Granularity string

const (
	GranularityMonth Granularity = "MONTH"
	GranularityYear  Granularity = "YEAR"
)

// SupportedGranularities lists the report types in display order.
var SupportedGranularities = []Granularity{GranularityMonth, GranularityYear}

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityMonth || g == GranularityYear
}

// Flow splits transactions by the sign of their value.
type Flow string

const (
	FlowIncome  Flow = "income"  // value > 0
	FlowExpense Flow = "expense" // value <= 0
)

// Matches reports whether value belongs to the flow.
func (f Flow) Matches(value float64) bool {
	if f == FlowIncome {
		return value > 0
	}
	return value <= 0
}

// BasicReport is the aggregated summary of one period.
// It is built once per request and never mutated afterwards.
type BasicReport struct {
	Total            float64
	Uncategorized    float64
	Dates            map[string]float64 // bucket key -> sum, zero-filled
	CategoryIncome   map[string]float64 // category-set label -> sum of values > 0
	CategoryExpenses map[string]float64 // category-set label -> sum of values <= 0
}
