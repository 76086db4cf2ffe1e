package grading

import (
	"fmt"
)

// Component mean below this threshold triggers a coaching
// recommendation.
const coachingThreshold = 70

// CoachingCategory identifies the grade component a recommendation
// addresses.
type CoachingCategory string

const (
	CoachRiskManagement  CoachingCategory = "RISK_MANAGEMENT"
	CoachMethodAlignment CoachingCategory = "METHOD_ALIGNMENT"
	CoachMindset         CoachingCategory = "MINDSET"
	CoachExecution       CoachingCategory = "EXECUTION"
)

// CoachingPriority orders recommendations by urgency.
type CoachingPriority string

const (
	PriorityHigh   CoachingPriority = "HIGH"
	PriorityMedium CoachingPriority = "MEDIUM"
	PriorityLow    CoachingPriority = "LOW"
)

// CoachingRecommendation is prioritized, categorized advice derived
// from a window of recent grades.
type CoachingRecommendation struct {
	Category    CoachingCategory
	Priority    CoachingPriority
	Message     string
	ActionItems []string
}

// Coach inspects recent composite grades and emits advice for every
// component whose mean score falls below 70. An empty slice means all
// components are healthy.
func Coach(recent []TradeGrade) []CoachingRecommendation {
	if len(recent) == 0 {
		return nil
	}

	var riskSum, alignSum, mindsetSum, execSum float64
	for _, g := range recent {
		riskSum += g.RiskManagement.Score
		alignSum += g.MethodAlignment.Score
		mindsetSum += g.MindsetQuality.Score
		execSum += g.Execution.Score
	}
	n := float64(len(recent))

	var recommendations []CoachingRecommendation

	if mean := riskSum / n; mean < coachingThreshold {
		recommendations = append(recommendations, CoachingRecommendation{
			Category: CoachRiskManagement,
			Priority: PriorityHigh,
			Message: fmt.Sprintf(
				"Risk management averaged %.0f over your last %d trades. Oversized or unprotected positions are your biggest leak.", mean, len(recent)),
			ActionItems: []string{
				"Cap every position at 2% of equity risk before entry",
				"Set the stop-loss at order time, never after",
				"Size positions from the stop distance, not from conviction",
			},
		})
	}

	if mean := alignSum / n; mean < coachingThreshold {
		recommendations = append(recommendations, CoachingRecommendation{
			Category: CoachMethodAlignment,
			Priority: PriorityHigh,
			Message: fmt.Sprintf(
				"Method alignment averaged %.0f over your last %d trades. You are trading against your own recorded signals.", mean, len(recent)),
			ActionItems: []string{
				"Analyze all three timeframes before every entry",
				"Skip setups where the overall alignment is a conflict",
			},
		})
	}

	if mean := mindsetSum / n; mean < coachingThreshold {
		recommendations = append(recommendations, CoachingRecommendation{
			Category: CoachMindset,
			Priority: PriorityMedium,
			Message: fmt.Sprintf(
				"Mindset quality averaged %.0f over your last %d trades. Emotional states are leaking into entries.", mean, len(recent)),
			ActionItems: []string{
				"Pause trading for the day after a revenge or FOMO tag",
				"Journal the emotional state before entry, not after exit",
			},
		})
	}

	if mean := execSum / n; mean < coachingThreshold {
		recommendations = append(recommendations, CoachingRecommendation{
			Category: CoachExecution,
			Priority: PriorityLow,
			Message: fmt.Sprintf(
				"Execution averaged %.0f over your last %d trades. Losses are running beyond plan.", mean, len(recent)),
			ActionItems: []string{
				"Exit at the stop without renegotiating it mid-trade",
				"Require at least a 2:1 reward-to-risk before entry",
			},
		})
	}

	return recommendations
}
