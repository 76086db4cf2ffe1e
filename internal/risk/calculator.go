// Package risk provides per-trade and portfolio risk calculations and
// risk-limit checks.
package risk

import (
	"fmt"
	"math"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
	"trade-journal/internal/money"
)

// Risk limits as a fraction of total equity.
const (
	IndividualRiskLimit = 0.02
	PortfolioRiskLimit  = 0.06
)

// TradeRisk returns the dollar loss if the stop is hit:
// |entry - stop| * size, exact to 2 decimals.
// All three inputs must be finite and strictly positive.
func TradeRisk(entryPrice, stopLoss, positionSize float64) (float64, error) {
	if err := requirePositive("entryPrice", entryPrice); err != nil {
		return 0, err
	}
	if err := requirePositive("stopLoss", stopLoss); err != nil {
		return 0, err
	}
	if err := requirePositive("positionSize", positionSize); err != nil {
		return 0, err
	}
	risk := money.Mul(math.Abs(money.Sub(entryPrice, stopLoss)), positionSize)
	return money.RoundCurrency(risk), nil
}

// PortfolioRisk sums RiskAmount over ACTIVE trades only.
func PortfolioRisk(trades []models.Trade) float64 {
	var active []float64
	for _, t := range trades {
		if t.Status == models.TradeActive {
			active = append(active, t.RiskAmount)
		}
	}
	return money.RoundCurrency(money.Sum(active...))
}

// ExceedsIndividualLimit reports whether a single trade's risk exceeds
// 2% of total equity.
func ExceedsIndividualLimit(riskAmount, totalEquity float64) bool {
	return riskAmount > money.Mul(totalEquity, IndividualRiskLimit)
}

// ExceedsPortfolioLimit reports whether total active risk exceeds 6% of
// total equity.
func ExceedsPortfolioLimit(portfolioRisk, totalEquity float64) bool {
	return portfolioRisk > money.Mul(totalEquity, PortfolioRiskLimit)
}

// RealizedPnL returns (exit - entry) * size for LONG, negated for SHORT.
// All three inputs must be finite and strictly positive.
func RealizedPnL(entryPrice, exitPrice, positionSize float64, direction models.Direction) (float64, error) {
	if err := requirePositive("entryPrice", entryPrice); err != nil {
		return 0, err
	}
	if err := requirePositive("exitPrice", exitPrice); err != nil {
		return 0, err
	}
	if err := requirePositive("positionSize", positionSize); err != nil {
		return 0, err
	}
	pnl := money.Mul(money.Sub(exitPrice, entryPrice), positionSize)
	if direction == models.DirectionShort {
		pnl = -pnl
	}
	return money.RoundCurrency(pnl), nil
}

// OptimalPositionSize returns the whole-unit size that risks exactly 2%
// of equity at the given stop distance, or 0 when entry equals the stop.
func OptimalPositionSize(totalEquity, entryPrice, stopLoss float64) float64 {
	perUnit := math.Abs(money.Sub(entryPrice, stopLoss))
	if perUnit == 0 {
		return 0
	}
	return math.Floor(money.Div(money.Mul(totalEquity, IndividualRiskLimit), perUnit))
}

// ValidateStopLossAdjustment checks that a proposed stop only moves in
// the risk-reducing direction: up for LONG, down for SHORT.
func ValidateStopLossAdjustment(direction models.Direction, currentStop, newStop float64) error {
	if err := requirePositive("newStop", newStop); err != nil {
		return err
	}
	switch direction {
	case models.DirectionLong:
		if newStop <= currentStop {
			return errors.NewValidationError("stopLoss", newStop,
				fmt.Sprintf("new stop for a LONG trade must be above the current stop %.2f", currentStop))
		}
	case models.DirectionShort:
		if newStop >= currentStop {
			return errors.NewValidationError("stopLoss", newStop,
				fmt.Sprintf("new stop for a SHORT trade must be below the current stop %.2f", currentStop))
		}
	default:
		return errors.NewValidationError("direction", direction, "direction must be LONG or SHORT")
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.NewValidationError(field, v, "must be a finite number")
	}
	if v <= 0 {
		return errors.NewValidationError(field, v, "must be greater than zero")
	}
	return nil
}
