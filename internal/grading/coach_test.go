package grading

import (
	"testing"
)

func gradeWith(riskScore, alignScore, mindsetScore, execScore float64) TradeGrade {
	return TradeGrade{
		RiskManagement:  Component{Score: riskScore, Weight: WeightRiskManagement},
		MethodAlignment: Component{Score: alignScore, Weight: WeightMethodAlignment},
		MindsetQuality:  Component{Score: mindsetScore, Weight: WeightMindsetQuality},
		Execution:       Component{Score: execScore, Weight: WeightExecution},
	}
}

func TestCoachEmptyInput(t *testing.T) {
	if got := Coach(nil); got != nil {
		t.Errorf("Coach(nil) = %v, want nil", got)
	}
}

func TestCoachHealthyGradesProduceNoAdvice(t *testing.T) {
	recent := []TradeGrade{
		gradeWith(90, 85, 80, 95),
		gradeWith(75, 90, 70, 100),
	}

	if got := Coach(recent); len(got) != 0 {
		t.Errorf("Coach() = %v, want no recommendations", got)
	}
}

func TestCoachFlagsWeakComponents(t *testing.T) {
	recent := []TradeGrade{
		gradeWith(50, 90, 40, 90),
		gradeWith(60, 85, 50, 95),
	}

	recommendations := Coach(recent)
	if len(recommendations) != 2 {
		t.Fatalf("Coach() returned %d recommendations, want 2", len(recommendations))
	}

	byCategory := make(map[CoachingCategory]CoachingRecommendation)
	for _, rec := range recommendations {
		byCategory[rec.Category] = rec
	}

	riskRec, ok := byCategory[CoachRiskManagement]
	if !ok {
		t.Fatal("expected a risk management recommendation")
	}
	if riskRec.Priority != PriorityHigh {
		t.Errorf("risk priority = %q, want HIGH", riskRec.Priority)
	}
	if len(riskRec.ActionItems) == 0 {
		t.Error("risk recommendation should carry action items")
	}

	mindsetRec, ok := byCategory[CoachMindset]
	if !ok {
		t.Fatal("expected a mindset recommendation")
	}
	if mindsetRec.Priority != PriorityMedium {
		t.Errorf("mindset priority = %q, want MEDIUM", mindsetRec.Priority)
	}
}

func TestCoachThresholdBoundary(t *testing.T) {
	// A mean of exactly 70 is healthy; just under triggers advice.
	atThreshold := []TradeGrade{gradeWith(70, 100, 100, 100)}
	if got := Coach(atThreshold); len(got) != 0 {
		t.Errorf("mean exactly at the threshold should not trigger advice, got %v", got)
	}

	below := []TradeGrade{gradeWith(69.9, 100, 100, 100)}
	got := Coach(below)
	if len(got) != 1 || got[0].Category != CoachRiskManagement {
		t.Errorf("mean just below the threshold should trigger exactly one recommendation, got %v", got)
	}
}

func TestCoachExecutionPriority(t *testing.T) {
	recent := []TradeGrade{gradeWith(100, 100, 100, 40)}

	got := Coach(recent)
	if len(got) != 1 {
		t.Fatalf("Coach() returned %d recommendations, want 1", len(got))
	}
	if got[0].Category != CoachExecution || got[0].Priority != PriorityLow {
		t.Errorf("got %q/%q, want EXECUTION/LOW", got[0].Category, got[0].Priority)
	}
}
