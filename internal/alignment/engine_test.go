package alignment

import (
	"math"
	"testing"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

func analysisOn(tf models.Timeframe, ind models.Indicator, sig models.Signal, div models.Divergence) models.MethodAnalysis {
	return models.MethodAnalysis{
		TradeID:    "t1",
		Timeframe:  tf,
		Indicator:  ind,
		Signal:     sig,
		Divergence: div,
	}
}

func TestAnalyzeStrongAlignment(t *testing.T) {
	analyses := []models.MethodAnalysis{
		analysisOn(models.TimeframeDaily, models.IndicatorMACD, models.SignalBuy, models.DivergenceBullish),
		analysisOn(models.TimeframeWeekly, models.IndicatorMACD, models.SignalBuy, models.DivergenceNone),
		analysisOn(models.TimeframeMonthly, models.IndicatorRSI, models.SignalOversold, models.DivergenceNone),
	}

	result, err := Analyze(models.DirectionLong, analyses)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.OverallScore <= 0.8 {
		t.Errorf("OverallScore = %v, want > 0.8", result.OverallScore)
	}
	if result.Level != StrongAlignment {
		t.Errorf("Level = %q, want %q", result.Level, StrongAlignment)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
	if len(result.Confirmations) == 0 {
		t.Error("expected confirmations for fully aligned signals")
	}
	if len(result.TimeframeBreakdown) != 3 {
		t.Errorf("breakdown has %d entries, want 3", len(result.TimeframeBreakdown))
	}
}

func TestAnalyzeStrongConflict(t *testing.T) {
	analyses := []models.MethodAnalysis{
		analysisOn(models.TimeframeDaily, models.IndicatorMACD, models.SignalSell, models.DivergenceBearish),
		analysisOn(models.TimeframeWeekly, models.IndicatorMACD, models.SignalSell, models.DivergenceNone),
	}

	result, err := Analyze(models.DirectionLong, analyses)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.OverallScore > -0.8 {
		t.Errorf("OverallScore = %v, want <= -0.8", result.OverallScore)
	}
	if result.Level != StrongConflict {
		t.Errorf("Level = %q, want %q", result.Level, StrongConflict)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warnings for conflicting signals")
	}
}

func TestAnalyzeSingleNeutralSignal(t *testing.T) {
	analyses := []models.MethodAnalysis{
		analysisOn(models.TimeframeDaily, models.IndicatorVolume, models.SignalNeutral, models.DivergenceNone),
	}

	result, err := Analyze(models.DirectionLong, analyses)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", result.OverallScore)
	}
	if result.Level != LevelNeutral {
		t.Errorf("Level = %q, want %q", result.Level, LevelNeutral)
	}
}

func TestAnalyzeUnknownCombinationIsZeroWeight(t *testing.T) {
	analyses := []models.MethodAnalysis{
		analysisOn(models.TimeframeDaily, models.IndicatorMACD, models.SignalBuy, models.DivergenceNone),
		analysisOn(models.TimeframeWeekly, models.Indicator("ICHIMOKU"), models.Signal("CLOUD_BREAK"), models.DivergenceNone),
	}

	result, err := Analyze(models.DirectionLong, analyses)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// The unmatched entry contributes nothing; the MACD buy dominates.
	if result.OverallScore != 1.0 {
		t.Errorf("OverallScore = %v, want 1.0", result.OverallScore)
	}

	var unmatched *TimeframeScore
	for i := range result.TimeframeBreakdown {
		if result.TimeframeBreakdown[i].Timeframe == models.TimeframeWeekly {
			unmatched = &result.TimeframeBreakdown[i]
		}
	}
	if unmatched == nil {
		t.Fatal("unmatched timeframe missing from breakdown")
	}
	if unmatched.RuleMatched {
		t.Error("unknown combination should not match a rule")
	}
	if unmatched.Score != 0 || unmatched.Category != Neutral {
		t.Errorf("unmatched entry = %v/%q, want 0/NEUTRAL", unmatched.Score, unmatched.Category)
	}
}

func TestDivergenceMultipliers(t *testing.T) {
	tests := []struct {
		name       string
		direction  models.Direction
		divergence models.Divergence
		want       float64
	}{
		// RSI oversold bullish base is 0.8 for LONG.
		{"aligned divergence boosts", models.DirectionLong, models.DivergenceBullish, 0.96},
		{"conflicting divergence dampens", models.DirectionLong, models.DivergenceBearish, 0.8 * 0.8},
		{"no divergence leaves base", models.DirectionLong, models.DivergenceNone, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyses := []models.MethodAnalysis{
				analysisOn(models.TimeframeDaily, models.IndicatorRSI, models.SignalOversold, tt.divergence),
			}
			result, err := Analyze(tt.direction, analyses)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			got := result.TimeframeBreakdown[0].Score
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("timeframe score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreClampedToBounds(t *testing.T) {
	// MACD buy base 1.0 with an aligned divergence would be 1.2 unclamped.
	analyses := []models.MethodAnalysis{
		analysisOn(models.TimeframeDaily, models.IndicatorMACD, models.SignalBuy, models.DivergenceBullish),
	}

	result, err := Analyze(models.DirectionLong, analyses)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.TimeframeBreakdown[0].Score != 1.0 {
		t.Errorf("timeframe score = %v, want clamped 1.0", result.TimeframeBreakdown[0].Score)
	}
	if result.OverallScore != 1.0 {
		t.Errorf("OverallScore = %v, want clamped 1.0", result.OverallScore)
	}
}

func TestRuleResolutionOrder(t *testing.T) {
	tests := []struct {
		name      string
		indicator models.Indicator
		signal    models.Signal
		wantOK    bool
		wantBull  float64
	}{
		{"exact match", models.IndicatorMACD, models.SignalBuy, true, 1.0},
		{"indicator wildcard", models.IndicatorMACD, models.Signal("SQUEEZE"), true, 0.2},
		{"signal wildcard", models.Indicator("ICHIMOKU"), models.SignalBuy, true, 0.6},
		{"no rule at all", models.Indicator("ICHIMOKU"), models.Signal("CLOUD_BREAK"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := resolveRule(tt.indicator, tt.signal)
			if ok != tt.wantOK {
				t.Fatalf("resolveRule() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rule.Bullish != tt.wantBull {
				t.Errorf("rule.Bullish = %v, want %v", rule.Bullish, tt.wantBull)
			}
		})
	}
}

func TestAnalyzeValidation(t *testing.T) {
	valid := analysisOn(models.TimeframeDaily, models.IndicatorMACD, models.SignalBuy, models.DivergenceNone)

	tests := []struct {
		name      string
		direction models.Direction
		analyses  []models.MethodAnalysis
	}{
		{"invalid direction", models.Direction("SIDEWAYS"), []models.MethodAnalysis{valid}},
		{"empty analyses", models.DirectionLong, nil},
		{"invalid timeframe", models.DirectionLong, []models.MethodAnalysis{
			analysisOn(models.Timeframe("HOURLY"), models.IndicatorMACD, models.SignalBuy, models.DivergenceNone),
		}},
		{"duplicate timeframe", models.DirectionLong, []models.MethodAnalysis{valid, valid}},
		{"missing indicator", models.DirectionLong, []models.MethodAnalysis{
			analysisOn(models.TimeframeDaily, "", models.SignalBuy, models.DivergenceNone),
		}},
		{"missing signal", models.DirectionLong, []models.MethodAnalysis{
			analysisOn(models.TimeframeDaily, models.IndicatorMACD, "", models.DivergenceNone),
		}},
		{"bad divergence", models.DirectionLong, []models.MethodAnalysis{
			analysisOn(models.TimeframeDaily, models.IndicatorMACD, models.SignalBuy, models.Divergence("SIDEWAYS")),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.direction, tt.analyses)
			if err == nil {
				t.Fatal("Analyze() should fail validation")
			}
			if !errors.Is(err, errors.ErrInputValidation) {
				t.Errorf("error should wrap ErrInputValidation, got %v", err)
			}
		})
	}
}
