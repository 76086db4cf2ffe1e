package alignment

import (
	"fmt"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// ValidateMethodAnalyses checks the value-level preconditions for
// scoring: a valid direction, a non-empty analysis list, at most one
// entry per timeframe, and a recorded indicator and signal on every
// entry.
func ValidateMethodAnalyses(direction models.Direction, analyses []models.MethodAnalysis) error {
	if !direction.IsValid() {
		return errors.NewValidationError("direction", direction, "direction must be LONG or SHORT")
	}
	if len(analyses) == 0 {
		return errors.NewValidationError("analyses", len(analyses), "at least one method analysis is required")
	}

	seen := make(map[models.Timeframe]bool, len(analyses))
	for i, ma := range analyses {
		field := fmt.Sprintf("analyses[%d]", i)
		if !ma.Timeframe.IsValid() {
			return errors.NewValidationError(field+".timeframe", ma.Timeframe,
				"timeframe must be DAILY, WEEKLY, or MONTHLY")
		}
		if seen[ma.Timeframe] {
			return errors.NewValidationError(field+".timeframe", ma.Timeframe,
				"duplicate timeframe: at most one analysis per timeframe")
		}
		seen[ma.Timeframe] = true

		if ma.Indicator == "" {
			return errors.NewValidationError(field+".indicator", ma.Indicator, "indicator is required")
		}
		if ma.Signal == "" {
			return errors.NewValidationError(field+".signal", ma.Signal, "signal is required")
		}
		switch ma.Divergence {
		case models.DivergenceBullish, models.DivergenceBearish, models.DivergenceNone, "":
		default:
			return errors.NewValidationError(field+".divergence", ma.Divergence,
				"divergence must be BULLISH, BEARISH, or NONE")
		}
	}
	return nil
}
