package statistics

import (
	"fmt"
	"math"
)

// Minimum sample size for statistically confident interpretation.
const significanceThreshold = 30

// SignificanceResult describes whether a sample of trades is large
// enough to interpret the statistics with confidence.
type SignificanceResult struct {
	SampleSize      int
	IsSignificant   bool
	ConfidenceLevel float64
	MarginOfError   float64
	Recommendation  string
}

// AssessSignificance evaluates the sample size of a statistics snapshot.
func AssessSignificance(sampleSize int) SignificanceResult {
	result := SignificanceResult{
		SampleSize:    sampleSize,
		IsSignificant: sampleSize >= significanceThreshold,
	}

	result.ConfidenceLevel = math.Min(95, float64(sampleSize)/significanceThreshold*95)

	if sampleSize == 0 {
		result.MarginOfError = 1
	} else {
		result.MarginOfError = 1.96 / math.Sqrt(float64(sampleSize))
	}

	if result.IsSignificant {
		result.Recommendation = "Sample size is sufficient for reliable interpretation of these statistics."
	} else {
		needed := significanceThreshold - sampleSize
		result.Recommendation = fmt.Sprintf(
			"Record %d more trades to reach the %d-trade sample needed for reliable interpretation.",
			needed, significanceThreshold)
	}

	return result
}
