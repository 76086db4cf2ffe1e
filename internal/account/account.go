// Package account tracks the trader's equity used for
// percentage-of-equity risk checks.
package account

import (
	"math"
	"sync"

	"trade-journal/internal/errors"
	"trade-journal/internal/money"
)

// Allowed band for a single deposit, withdrawal, or adjustment.
const (
	MinAdjustment = 0.01
	MaxAdjustment = 10_000_000
)

// Account is an equity ledger. All balance math goes through exact
// decimal arithmetic so repeated small adjustments never drift.
type Account struct {
	mu     sync.RWMutex
	equity float64
}

// New creates an account with the given starting equity.
func New(startingEquity float64) *Account {
	return &Account{equity: startingEquity}
}

// Equity returns the current total equity.
func (a *Account) Equity() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.equity
}

// Deposit adds funds to the account.
func (a *Account) Deposit(amount float64) (float64, error) {
	if err := validateAdjustment(amount); err != nil {
		return 0, err
	}
	return a.apply(amount), nil
}

// Withdraw removes funds from the account. Withdrawing more than the
// current equity fails with ErrInsufficientFunds. The balance check
// and the debit happen under one lock so concurrent withdrawals
// cannot both pass the check and drive equity negative.
func (a *Account) Withdraw(amount float64) (float64, error) {
	if err := validateAdjustment(amount); err != nil {
		return 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount > a.equity {
		return 0, errors.ErrInsufficientFunds
	}
	return a.applyLocked(-amount), nil
}

// ApplyPnL credits or debits a realized trade result. Trade results
// bypass the adjustment band: any realized amount moves equity.
func (a *Account) ApplyPnL(pnl float64) float64 {
	return a.apply(pnl)
}

// apply updates equity through exact decimal addition and returns the
// new balance rounded to the currency boundary.
func (a *Account) apply(delta float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyLocked(delta)
}

// applyLocked requires a.mu to be held.
func (a *Account) applyLocked(delta float64) float64 {
	a.equity = money.RoundCurrency(money.Add(a.equity, delta))
	return a.equity
}

// validateAdjustment rejects amounts outside the band. NaN compares
// false against both bounds, so non-finite values need their own check
// before the decimal layer sees them.
func validateAdjustment(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errors.ErrInvalidAdjustment
	}
	if amount < MinAdjustment || amount > MaxAdjustment {
		return errors.ErrInvalidAdjustment
	}
	return nil
}
