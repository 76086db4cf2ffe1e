// Package grading combines risk, method-alignment, mindset, and
// execution quality into a single weighted composite grade per trade.
package grading

import (
	"fmt"
	"math"
	"time"

	"trade-journal/internal/alignment"
	"trade-journal/internal/models"
	"trade-journal/internal/money"
	"trade-journal/internal/risk"
)

// Component weights. Fixed product constants summing to 1.0.
const (
	WeightRiskManagement  = 0.35
	WeightMethodAlignment = 0.30
	WeightMindsetQuality  = 0.25
	WeightExecution       = 0.10
)

// Default reward target when the trader recorded none, as a multiple
// of the entry price.
const defaultTargetMultiple = 1.06

// LetterGrade is the 11-level letter summary of a composite score.
type LetterGrade string

const (
	GradeAPlus  LetterGrade = "A+"
	GradeA      LetterGrade = "A"
	GradeAMinus LetterGrade = "A-"
	GradeBPlus  LetterGrade = "B+"
	GradeB      LetterGrade = "B"
	GradeBMinus LetterGrade = "B-"
	GradeCPlus  LetterGrade = "C+"
	GradeC      LetterGrade = "C"
	GradeCMinus LetterGrade = "C-"
	GradeD      LetterGrade = "D"
	GradeF      LetterGrade = "F"
)

// Component is one scored dimension of a trade grade.
type Component struct {
	Score        float64
	Weight       float64
	Factors      []string
	Improvements []string
}

// TradeGrade is the composite grade for a single trade.
type TradeGrade struct {
	Overall         LetterGrade
	Score           float64
	RiskManagement  Component
	MethodAlignment Component
	MindsetQuality  Component
	Execution       Component
	Explanation     []string
	Recommendations []string
}

// RecomputeReason tags why a grade was (re)computed.
type RecomputeReason string

const (
	ReasonTradeClose     RecomputeReason = "TRADE_CLOSE"
	ReasonAnalysisUpdate RecomputeReason = "ANALYSIS_UPDATE"
	ReasonMindsetUpdate  RecomputeReason = "MINDSET_UPDATE"
	ReasonManualRecalc   RecomputeReason = "MANUAL_RECALC"
)

// HistoryEntry is an append-only record of a computed grade.
type HistoryEntry struct {
	ID         string
	TradeID    string
	Score      float64
	Overall    LetterGrade
	Reason     RecomputeReason
	ComputedAt time.Time
}

// Input carries everything the grading engine needs for one trade. The
// engine never mutates it.
type Input struct {
	Trade          models.Trade
	Alignment      *alignment.Analysis
	AnalyzedFrames int
	MindsetTags    []models.MindsetTag
	TotalEquity    float64
	TargetPrice    *float64
}

// Grade computes the weighted composite grade for a trade.
func Grade(in Input) TradeGrade {
	grade := TradeGrade{
		RiskManagement:  scoreRiskManagement(in),
		MethodAlignment: scoreMethodAlignment(in),
		MindsetQuality:  scoreMindsetQuality(in),
		Execution:       scoreExecution(in),
	}

	composite := grade.RiskManagement.Score*grade.RiskManagement.Weight +
		grade.MethodAlignment.Score*grade.MethodAlignment.Weight +
		grade.MindsetQuality.Score*grade.MindsetQuality.Weight +
		grade.Execution.Score*grade.Execution.Weight
	grade.Score = money.RoundCurrency(composite)
	grade.Overall = letterForScore(grade.Score)

	grade.Explanation = buildExplanation(in, grade)
	grade.Recommendations = buildRecommendations(grade)

	return grade
}

// scoreRiskManagement penalizes oversized risk, missing stops, and
// position sizes far from the 2%-risk optimum.
func scoreRiskManagement(in Input) Component {
	c := Component{Score: 100, Weight: WeightRiskManagement}
	t := in.Trade

	riskPct := 0.0
	if in.TotalEquity > 0 {
		riskPct = money.Div(t.RiskAmount, in.TotalEquity) * 100
	}

	switch {
	case riskPct <= 1.5:
		c.Factors = append(c.Factors, fmt.Sprintf("Risk of %.1f%% of equity is conservative", riskPct))
	case riskPct <= 2:
		c.Score -= 10
		c.Factors = append(c.Factors, fmt.Sprintf("Risk of %.1f%% of equity is at the limit", riskPct))
	case riskPct <= 3:
		c.Score -= 25
		c.Factors = append(c.Factors, fmt.Sprintf("Risk of %.1f%% of equity exceeds the 2%% limit", riskPct))
		c.Improvements = append(c.Improvements, "Reduce position size to keep risk at or below 2% of equity")
	default:
		c.Score -= 50
		c.Factors = append(c.Factors, fmt.Sprintf("Risk of %.1f%% of equity is far beyond the 2%% limit", riskPct))
		c.Improvements = append(c.Improvements, "CRITICAL: risk above 3% of equity endangers the account; cut size immediately")
	}

	if t.StopLoss <= 0 {
		c.Score -= 25
		c.Factors = append(c.Factors, "No stop-loss recorded")
		c.Improvements = append(c.Improvements, "Always set a stop-loss before entry")
	} else {
		optimal := risk.OptimalPositionSize(in.TotalEquity, t.EntryPrice, t.StopLoss)
		if optimal > 0 {
			deviation := math.Abs(t.PositionSize-optimal) / optimal
			switch {
			case deviation <= 0.10:
				c.Factors = append(c.Factors, "Position size matches the 2%-risk optimal size")
			case deviation <= 0.25:
				c.Score -= 5
				c.Factors = append(c.Factors, fmt.Sprintf("Position size deviates %.0f%% from the optimal %g", deviation*100, optimal))
			default:
				c.Score -= 15
				c.Factors = append(c.Factors, fmt.Sprintf("Position size deviates %.0f%% from the optimal %g", deviation*100, optimal))
				c.Improvements = append(c.Improvements, "Size positions from the stop distance: floor(equity x 2% / stop distance)")
			}
		}
	}

	if c.Score < 0 {
		c.Score = 0
	}
	return c
}

var alignmentBonus = map[alignment.Level]float64{
	alignment.StrongAlignment: 20,
	alignment.WeakAlignment:   10,
	alignment.LevelNeutral:    0,
	alignment.WeakConflict:    -10,
	alignment.StrongConflict:  -25,
}

// scoreMethodAlignment rewards signal agreement with the trade
// direction and complete multi-timeframe coverage.
func scoreMethodAlignment(in Input) Component {
	c := Component{Weight: WeightMethodAlignment}

	if in.Alignment == nil {
		c.Score = 50
		c.Factors = append(c.Factors, "No method analysis recorded for this trade")
		c.Improvements = append(c.Improvements, "Record technical analysis before entering to verify signal alignment")
		return c
	}

	c.Score = 80 + alignmentBonus[in.Alignment.Level]
	c.Factors = append(c.Factors, fmt.Sprintf("Signal alignment is %s (score %.2f)",
		in.Alignment.Level, in.Alignment.OverallScore))

	switch {
	case in.AnalyzedFrames >= 3:
		c.Factors = append(c.Factors, "All three timeframes analyzed")
	case in.AnalyzedFrames == 2:
		c.Score -= 10
		c.Factors = append(c.Factors, "Only two timeframes analyzed")
		c.Improvements = append(c.Improvements, "Analyze daily, weekly, and monthly timeframes before entry")
	default:
		c.Score -= 20
		c.Factors = append(c.Factors, "Only one timeframe analyzed")
		c.Improvements = append(c.Improvements, "Analyze daily, weekly, and monthly timeframes before entry")
	}

	for _, w := range in.Alignment.Warnings {
		c.Factors = append(c.Factors, "Warning: "+w)
	}

	if c.Score < 0 {
		c.Score = 0
	}
	if c.Score > 100 {
		c.Score = 100
	}
	return c
}

// scoreMindsetQuality penalizes negative psychological states, more
// heavily when they are not outweighed by positive ones.
func scoreMindsetQuality(in Input) Component {
	c := Component{Weight: WeightMindsetQuality}

	if len(in.MindsetTags) == 0 {
		c.Score = 50
		c.Factors = append(c.Factors, "No mindset tags recorded for this trade")
		c.Improvements = append(c.Improvements, "Tag your psychological state on every trade to surface patterns")
		return c
	}

	var positives, negatives int
	for _, tag := range in.MindsetTags {
		switch tag.Tag.Category() {
		case models.MindsetPositive:
			positives++
		case models.MindsetNegative:
			negatives++
		}
	}

	c.Score = 100
	if negatives > 0 {
		perTag := 10.0
		if negatives >= positives {
			perTag = 20.0
		}
		c.Score -= perTag * float64(negatives)
		c.Factors = append(c.Factors, fmt.Sprintf("%d negative mindset tag(s) against %d positive", negatives, positives))
		c.Improvements = append(c.Improvements, "Step away when negative states like FOMO or revenge trading appear")
	} else {
		c.Factors = append(c.Factors, fmt.Sprintf("Positive mindset: %d supportive tag(s), no negative states", positives))
	}

	if c.Score < 0 {
		c.Score = 0
	}
	return c
}

// scoreExecution checks loss containment against the planned risk and
// the risk-reward ratio of the setup.
func scoreExecution(in Input) Component {
	c := Component{Score: 100, Weight: WeightExecution}
	t := in.Trade

	if pnl, ok := t.PnL(); ok && t.Status == models.TradeClosed {
		switch {
		case pnl >= 0:
			c.Factors = append(c.Factors, fmt.Sprintf("Closed with a profit of %.2f", pnl))
		case math.Abs(pnl) <= money.Mul(t.RiskAmount, 1.1):
			c.Score -= 10
			c.Factors = append(c.Factors, "Loss was contained within the planned risk")
		default:
			c.Score -= 30
			c.Factors = append(c.Factors, fmt.Sprintf("Loss of %.2f exceeded the planned risk of %.2f", math.Abs(pnl), t.RiskAmount))
			c.Improvements = append(c.Improvements, "Honor the stop-loss: losses beyond planned risk compound quickly")
		}
	} else {
		c.Factors = append(c.Factors, "Trade still active; execution not yet assessable")
	}

	if t.EntryPrice > 0 && t.StopLoss > 0 {
		target := money.Mul(t.EntryPrice, defaultTargetMultiple)
		if in.TargetPrice != nil {
			target = *in.TargetPrice
		}
		stopDistance := math.Abs(money.Sub(t.EntryPrice, t.StopLoss))
		if stopDistance > 0 {
			rr := money.Div(math.Abs(money.Sub(target, t.EntryPrice)), stopDistance)
			switch {
			case rr >= 3:
				c.Factors = append(c.Factors, fmt.Sprintf("Excellent risk-reward ratio of %.2f", rr))
			case rr >= 2:
				c.Factors = append(c.Factors, fmt.Sprintf("Good risk-reward ratio of %.2f", rr))
			default:
				c.Score -= 15
				c.Factors = append(c.Factors, fmt.Sprintf("Risk-reward ratio of %.2f is below 2", rr))
				c.Improvements = append(c.Improvements, "Target at least a 2:1 reward for the risk taken")
			}
		}
	}

	if c.Score < 0 {
		c.Score = 0
	}
	return c
}

func letterForScore(score float64) LetterGrade {
	switch {
	case score >= 97:
		return GradeAPlus
	case score >= 93:
		return GradeA
	case score >= 90:
		return GradeAMinus
	case score >= 87:
		return GradeBPlus
	case score >= 83:
		return GradeB
	case score >= 80:
		return GradeBMinus
	case score >= 77:
		return GradeCPlus
	case score >= 73:
		return GradeC
	case score >= 70:
		return GradeCMinus
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

func buildExplanation(in Input, grade TradeGrade) []string {
	t := in.Trade
	explanation := []string{
		fmt.Sprintf("%s %s graded %s (%.2f/100)", t.Symbol, t.Direction, grade.Overall, grade.Score),
		fmt.Sprintf("Risk management scored %.0f (weight %.0f%%)", grade.RiskManagement.Score, WeightRiskManagement*100),
		fmt.Sprintf("Method alignment scored %.0f (weight %.0f%%)", grade.MethodAlignment.Score, WeightMethodAlignment*100),
		fmt.Sprintf("Mindset quality scored %.0f (weight %.0f%%)", grade.MindsetQuality.Score, WeightMindsetQuality*100),
		fmt.Sprintf("Execution scored %.0f (weight %.0f%%)", grade.Execution.Score, WeightExecution*100),
	}
	if pnl, ok := t.PnL(); ok {
		explanation = append(explanation, fmt.Sprintf("Realized P/L: %.2f", pnl))
	}
	return explanation
}

// buildRecommendations de-duplicates the union of component
// improvement lists, preserving first-seen order.
func buildRecommendations(grade TradeGrade) []string {
	var recommendations []string
	seen := make(map[string]bool)
	for _, component := range []Component{
		grade.RiskManagement, grade.MethodAlignment, grade.MindsetQuality, grade.Execution,
	} {
		for _, improvement := range component.Improvements {
			if !seen[improvement] {
				seen[improvement] = true
				recommendations = append(recommendations, improvement)
			}
		}
	}

	if grade.Score < 70 {
		recommendations = append(recommendations,
			"Review this trade against your written trading plan before the next entry",
			"Consider reducing size until composite grades return above 70")
	}

	return recommendations
}
