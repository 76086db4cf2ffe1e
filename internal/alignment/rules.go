// Package alignment scores how well recorded technical signals agree
// with a trade's chosen direction, per timeframe and overall.
package alignment

import (
	"trade-journal/internal/models"
)

// Wildcard placeholders used by rule-table entries.
const (
	AnyIndicator models.Indicator = "ANY"
	AnySignal    models.Signal    = "ANY"
)

// Rule maps an (indicator, signal) pair to directional alignment
// scores. Bullish is the score applied to LONG trades, Bearish to
// SHORT trades; both lie in [-1, 1]. Weight in (0, 1] sets the pair's
// contribution to the overall score.
type Rule struct {
	Indicator models.Indicator
	Signal    models.Signal
	Bullish   float64
	Bearish   float64
	Weight    float64
}

// The rule table is static product data, constructed once and never
// mutated. Values encode product decisions; do not re-derive them.
var ruleTable = []Rule{
	{models.IndicatorMACD, models.SignalBuy, 1.0, -1.0, 1.0},
	{models.IndicatorMACD, models.SignalSell, -1.0, 1.0, 1.0},
	{models.IndicatorMACD, models.SignalBullishCrossover, 0.9, -0.9, 0.9},
	{models.IndicatorMACD, models.SignalBearishCrossover, -0.9, 0.9, 0.9},

	{models.IndicatorRSI, models.SignalOversold, 0.8, -0.6, 0.8},
	{models.IndicatorRSI, models.SignalOverbought, -0.8, 0.6, 0.8},
	{models.IndicatorRSI, models.SignalBuy, 0.7, -0.7, 0.7},
	{models.IndicatorRSI, models.SignalSell, -0.7, 0.7, 0.7},

	{models.IndicatorStochastic, models.SignalOversold, 0.7, -0.5, 0.6},
	{models.IndicatorStochastic, models.SignalOverbought, -0.7, 0.5, 0.6},

	{models.IndicatorMovingAverage, models.SignalBullishCrossover, 0.8, -0.8, 0.8},
	{models.IndicatorMovingAverage, models.SignalBearishCrossover, -0.8, 0.8, 0.8},
	{models.IndicatorMovingAverage, models.SignalBuy, 0.6, -0.6, 0.6},
	{models.IndicatorMovingAverage, models.SignalSell, -0.6, 0.6, 0.6},

	{models.IndicatorBollingerBands, models.SignalOversold, 0.6, -0.4, 0.5},
	{models.IndicatorBollingerBands, models.SignalOverbought, -0.6, 0.4, 0.5},

	{models.IndicatorVolume, models.SignalBuy, 0.5, -0.5, 0.4},
	{models.IndicatorVolume, models.SignalSell, -0.5, 0.5, 0.4},

	// Wildcard fallbacks, matched after exact entries.
	{models.IndicatorMACD, AnySignal, 0.2, -0.2, 0.3},
	{models.IndicatorRSI, AnySignal, 0.1, -0.1, 0.2},
	{AnyIndicator, models.SignalBuy, 0.6, -0.6, 0.5},
	{AnyIndicator, models.SignalSell, -0.6, 0.6, 0.5},
	{AnyIndicator, models.SignalNeutral, 0, 0, 0.3},
}

type ruleKey struct {
	indicator models.Indicator
	signal    models.Signal
}

var ruleIndex = buildRuleIndex()

func buildRuleIndex() map[ruleKey]Rule {
	index := make(map[ruleKey]Rule, len(ruleTable))
	for _, r := range ruleTable {
		index[ruleKey{r.Indicator, r.Signal}] = r
	}
	return index
}

// resolveRule finds the rule for an (indicator, signal) pair, falling
// back through wildcard entries: exact, then (indicator, ANY), then
// (ANY, signal), then (ANY, ANY).
func resolveRule(indicator models.Indicator, signal models.Signal) (Rule, bool) {
	lookups := []ruleKey{
		{indicator, signal},
		{indicator, AnySignal},
		{AnyIndicator, signal},
		{AnyIndicator, AnySignal},
	}
	for _, key := range lookups {
		if rule, ok := ruleIndex[key]; ok {
			return rule, true
		}
	}
	return Rule{}, false
}
