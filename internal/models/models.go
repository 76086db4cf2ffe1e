// Package models provides domain models for the trading journal.
package models

import (
	"time"
)

// Direction represents the intended direction of a trade.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// IsValid reports whether the direction is one of the known values.
func (d Direction) IsValid() bool {
	return d == DirectionLong || d == DirectionShort
}

// TradeStatus represents the lifecycle status of a trade.
// The transition is one-way: ACTIVE -> CLOSED.
type TradeStatus string

const (
	TradeActive TradeStatus = "ACTIVE"
	TradeClosed TradeStatus = "CLOSED"
)

// Trade represents a journaled trade. RiskAmount is derived at creation
// and stop adjustment time as |EntryPrice-StopLoss|*PositionSize.
// RealizedPnL is nil exactly while the trade is ACTIVE.
type Trade struct {
	ID           string
	Symbol       string
	Direction    Direction
	EntryPrice   float64
	StopLoss     float64
	ExitPrice    *float64
	PositionSize float64
	RiskAmount   float64
	RealizedPnL  *float64
	Status       TradeStatus
	EntryDate    time.Time
	ExitDate     *time.Time
	Notes        string
}

// PnL returns the realized P/L and whether it is set.
func (t *Trade) PnL() (float64, bool) {
	if t.RealizedPnL == nil {
		return 0, false
	}
	return *t.RealizedPnL, true
}

// ReturnPercent returns the realized return as a percentage of the
// capital deployed at entry, or 0 for open trades.
func (t *Trade) ReturnPercent() float64 {
	if t.RealizedPnL == nil || t.EntryPrice == 0 || t.PositionSize == 0 {
		return 0
	}
	return *t.RealizedPnL / (t.EntryPrice * t.PositionSize) * 100
}

// HoldDuration returns the time between entry and exit and whether both
// dates are known.
func (t *Trade) HoldDuration() (time.Duration, bool) {
	if t.ExitDate == nil {
		return 0, false
	}
	return t.ExitDate.Sub(t.EntryDate), true
}
