package account

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"trade-journal/internal/errors"
)

func TestDeposit(t *testing.T) {
	acct := New(1000)

	equity, err := acct.Deposit(250.50)
	if err != nil {
		t.Fatalf("Deposit() error = %v", err)
	}
	if equity != 1250.50 {
		t.Errorf("equity = %v, want 1250.50", equity)
	}
}

func TestDepositExactArithmetic(t *testing.T) {
	acct := New(0)
	acct.Deposit(0.1)
	acct.Deposit(0.2)

	if got := acct.Equity(); got != 0.3 {
		t.Errorf("equity = %v, want exactly 0.3", got)
	}
}

func TestWithdraw(t *testing.T) {
	acct := New(1000)

	equity, err := acct.Withdraw(400)
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if equity != 600 {
		t.Errorf("equity = %v, want 600", equity)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	acct := New(100)

	if _, err := acct.Withdraw(100.01); !errors.Is(err, errors.ErrInsufficientFunds) {
		t.Errorf("error = %v, want ErrInsufficientFunds", err)
	}
	if acct.Equity() != 100 {
		t.Errorf("failed withdrawal must not change equity, got %v", acct.Equity())
	}
}

func TestWithdrawEntireBalance(t *testing.T) {
	acct := New(100)

	equity, err := acct.Withdraw(100)
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if equity != 0 {
		t.Errorf("equity = %v, want 0", equity)
	}
}

func TestAdjustmentBand(t *testing.T) {
	acct := New(1000)

	tests := []struct {
		name   string
		amount float64
	}{
		{"below minimum", 0.001},
		{"zero", 0},
		{"negative", -50},
		{"above maximum", 10_000_000.01},
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := acct.Deposit(tt.amount); !errors.Is(err, errors.ErrInvalidAdjustment) {
				t.Errorf("Deposit(%v) error = %v, want ErrInvalidAdjustment", tt.amount, err)
			}
			if _, err := acct.Withdraw(tt.amount); !errors.Is(err, errors.ErrInvalidAdjustment) {
				t.Errorf("Withdraw(%v) error = %v, want ErrInvalidAdjustment", tt.amount, err)
			}
		})
	}

	if acct.Equity() != 1000 {
		t.Errorf("rejected adjustments must not change equity, got %v", acct.Equity())
	}
}

func TestApplyPnLBypassesBand(t *testing.T) {
	acct := New(1000)

	// Trade results smaller than the adjustment minimum still apply.
	if equity := acct.ApplyPnL(0.001); equity != 1000 {
		t.Errorf("equity = %v, want 1000 after sub-cent P/L rounds away", equity)
	}
	if equity := acct.ApplyPnL(-150.25); equity != 849.75 {
		t.Errorf("equity = %v, want 849.75", equity)
	}
}

func TestConcurrentAdjustments(t *testing.T) {
	acct := New(0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acct.Deposit(1)
		}()
	}
	wg.Wait()

	if got := acct.Equity(); got != 100 {
		t.Errorf("equity = %v, want 100 after 100 concurrent unit deposits", got)
	}
}

func TestConcurrentWithdrawalsCannotOverdraw(t *testing.T) {
	acct := New(150)

	var succeeded atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := acct.Withdraw(100); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := succeeded.Load(); got != 1 {
		t.Errorf("successful withdrawals = %d, want exactly 1", got)
	}
	if got := acct.Equity(); got != 50 {
		t.Errorf("equity = %v, want 50", got)
	}
}
