package models

// Timeframe represents an analysis timeframe. A trade carries at most
// one MethodAnalysis per timeframe.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "DAILY"
	TimeframeWeekly  Timeframe = "WEEKLY"
	TimeframeMonthly Timeframe = "MONTHLY"
)

// AllTimeframes returns the supported analysis timeframes.
func AllTimeframes() []Timeframe {
	return []Timeframe{TimeframeDaily, TimeframeWeekly, TimeframeMonthly}
}

// IsValid reports whether the timeframe is one of the known values.
func (tf Timeframe) IsValid() bool {
	switch tf {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return true
	}
	return false
}

// Indicator represents a technical indicator recorded in an analysis.
type Indicator string

const (
	IndicatorMACD           Indicator = "MACD"
	IndicatorRSI            Indicator = "RSI"
	IndicatorStochastic     Indicator = "STOCHASTIC"
	IndicatorMovingAverage  Indicator = "MOVING_AVERAGE"
	IndicatorBollingerBands Indicator = "BOLLINGER_BANDS"
	IndicatorVolume         Indicator = "VOLUME"
)

// Signal represents the signal observed on an indicator.
type Signal string

const (
	SignalBuy              Signal = "BUY_SIGNAL"
	SignalSell             Signal = "SELL_SIGNAL"
	SignalOverbought       Signal = "OVERBOUGHT"
	SignalOversold         Signal = "OVERSOLD"
	SignalBullishCrossover Signal = "BULLISH_CROSSOVER"
	SignalBearishCrossover Signal = "BEARISH_CROSSOVER"
	SignalNeutral          Signal = "NEUTRAL"
)

// Divergence represents a price/indicator divergence pattern.
type Divergence string

const (
	DivergenceBullish Divergence = "BULLISH"
	DivergenceBearish Divergence = "BEARISH"
	DivergenceNone    Divergence = "NONE"
)

// MethodAnalysis is one technical-analysis observation for a
// (trade, timeframe) pair.
type MethodAnalysis struct {
	TradeID    string
	Timeframe  Timeframe
	Indicator  Indicator
	Signal     Signal
	Divergence Divergence
	Notes      string
}
