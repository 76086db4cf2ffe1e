package alignment

import (
	"fmt"

	"trade-journal/internal/models"
)

// Divergence multipliers. These are product constants, not tunables.
const (
	divergenceAlignedMultiplier    = 1.2
	divergenceConflictedMultiplier = 0.8
)

// Level is the 5-point categorical summary of the overall score.
type Level string

const (
	StrongAlignment Level = "STRONG_ALIGNMENT"
	WeakAlignment   Level = "WEAK_ALIGNMENT"
	LevelNeutral    Level = "NEUTRAL"
	WeakConflict    Level = "WEAK_CONFLICT"
	StrongConflict  Level = "STRONG_CONFLICT"
)

// Category classifies a single timeframe's score.
type Category string

const (
	Aligned    Category = "ALIGNED"
	Conflicted Category = "CONFLICTED"
	Neutral    Category = "NEUTRAL"
)

// TimeframeScore is the per-timeframe breakdown entry.
type TimeframeScore struct {
	Timeframe   models.Timeframe
	Indicator   models.Indicator
	Signal      models.Signal
	Divergence  models.Divergence
	Score       float64
	Category    Category
	RuleMatched bool
}

// Analysis is the alignment verdict for a trade's recorded signals.
type Analysis struct {
	OverallScore       float64
	Level              Level
	Warnings           []string
	Confirmations      []string
	TimeframeBreakdown []TimeframeScore
}

// Analyze scores each timeframe's recorded signal against the trade
// direction and combines them into an overall verdict. It fails fast on
// invalid direction, an empty analysis list, or duplicate timeframes;
// unknown indicator-signal combinations are not errors and contribute a
// neutral, zero-weight entry.
func Analyze(direction models.Direction, analyses []models.MethodAnalysis) (*Analysis, error) {
	if err := ValidateMethodAnalyses(direction, analyses); err != nil {
		return nil, err
	}

	result := &Analysis{
		Warnings:           []string{},
		Confirmations:      []string{},
		TimeframeBreakdown: make([]TimeframeScore, 0, len(analyses)),
	}

	var weightedSum, weightTotal float64
	for _, ma := range analyses {
		entry := scoreTimeframe(direction, ma)
		result.TimeframeBreakdown = append(result.TimeframeBreakdown, entry)

		if entry.RuleMatched {
			rule, _ := resolveRule(ma.Indicator, ma.Signal)
			weightedSum += entry.Score * rule.Weight
			weightTotal += rule.Weight
		}

		switch entry.Category {
		case Aligned:
			result.Confirmations = append(result.Confirmations, fmt.Sprintf(
				"%s: %s %s supports the %s direction",
				ma.Timeframe, ma.Indicator, ma.Signal, direction))
		case Conflicted:
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s: %s %s conflicts with the %s direction",
				ma.Timeframe, ma.Indicator, ma.Signal, direction))
		}

		if ma.Divergence != models.DivergenceNone && ma.Divergence != "" {
			if divergenceAligned(ma.Divergence, direction) {
				result.Confirmations = append(result.Confirmations, fmt.Sprintf(
					"%s: %s divergence confirms the %s direction",
					ma.Timeframe, ma.Divergence, direction))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"%s: %s divergence warns against the %s direction",
					ma.Timeframe, ma.Divergence, direction))
			}
		}
	}

	if weightTotal > 0 {
		result.OverallScore = clamp(weightedSum/weightTotal, -1, 1)
	}
	result.Level = levelForScore(result.OverallScore)

	return result, nil
}

// scoreTimeframe resolves the rule for one analysis entry and applies
// the divergence multiplier. Scores are clamped to [-1, 1].
func scoreTimeframe(direction models.Direction, ma models.MethodAnalysis) TimeframeScore {
	entry := TimeframeScore{
		Timeframe:  ma.Timeframe,
		Indicator:  ma.Indicator,
		Signal:     ma.Signal,
		Divergence: ma.Divergence,
		Category:   Neutral,
	}

	rule, ok := resolveRule(ma.Indicator, ma.Signal)
	if !ok {
		return entry
	}
	entry.RuleMatched = true

	base := rule.Bullish
	if direction == models.DirectionShort {
		base = rule.Bearish
	}

	multiplier := 1.0
	if ma.Divergence != models.DivergenceNone && ma.Divergence != "" {
		if divergenceAligned(ma.Divergence, direction) {
			multiplier = divergenceAlignedMultiplier
		} else {
			multiplier = divergenceConflictedMultiplier
		}
	}

	entry.Score = clamp(base*multiplier, -1, 1)
	switch {
	case entry.Score > 0.5:
		entry.Category = Aligned
	case entry.Score < -0.5:
		entry.Category = Conflicted
	}

	return entry
}

// divergenceAligned reports whether the divergence agrees with the
// trade direction: BULLISH confirms LONG, BEARISH confirms SHORT.
func divergenceAligned(d models.Divergence, direction models.Direction) bool {
	return (d == models.DivergenceBullish && direction == models.DirectionLong) ||
		(d == models.DivergenceBearish && direction == models.DirectionShort)
}

func levelForScore(score float64) Level {
	switch {
	case score > 0.7:
		return StrongAlignment
	case score > 0.3:
		return WeakAlignment
	case score > -0.3:
		return LevelNeutral
	case score > -0.7:
		return WeakConflict
	default:
		return StrongConflict
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
