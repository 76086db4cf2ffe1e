package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"trade-journal/internal/errors"
	"trade-journal/internal/grading"
	"trade-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTrade() *models.Trade {
	return &models.Trade{
		Symbol:       "AAPL",
		Direction:    models.DirectionLong,
		EntryPrice:   100,
		StopLoss:     95,
		PositionSize: 40,
		RiskAmount:   200,
		Status:       models.TradeActive,
		EntryDate:    time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		Notes:        "breakout above range",
	}
}

func TestTradeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	if err := store.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade() error = %v", err)
	}
	if trade.ID == "" {
		t.Fatal("SaveTrade() should assign an ID")
	}

	got, err := store.GetTrade(ctx, trade.ID)
	if err != nil {
		t.Fatalf("GetTrade() error = %v", err)
	}

	if got.Symbol != trade.Symbol || got.Direction != trade.Direction ||
		got.EntryPrice != trade.EntryPrice || got.StopLoss != trade.StopLoss ||
		got.PositionSize != trade.PositionSize || got.RiskAmount != trade.RiskAmount ||
		got.Status != trade.Status || got.Notes != trade.Notes {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, trade)
	}
	if got.ExitPrice != nil || got.RealizedPnL != nil || got.ExitDate != nil {
		t.Error("active trade should have nil exit fields")
	}
}

func TestGetTradeNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTrade(context.Background(), "missing")
	if !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("error = %v, want ErrTradeNotFound", err)
	}
}

func TestUpdateTradeClose(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	if err := store.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade() error = %v", err)
	}

	exit := 110.0
	pnl := 400.0
	exitDate := trade.EntryDate.Add(72 * time.Hour)
	trade.ExitPrice = &exit
	trade.RealizedPnL = &pnl
	trade.ExitDate = &exitDate
	trade.Status = models.TradeClosed

	if err := store.UpdateTrade(ctx, trade); err != nil {
		t.Fatalf("UpdateTrade() error = %v", err)
	}

	got, err := store.GetTrade(ctx, trade.ID)
	if err != nil {
		t.Fatalf("GetTrade() error = %v", err)
	}
	if got.Status != models.TradeClosed {
		t.Errorf("Status = %q, want CLOSED", got.Status)
	}
	if got.RealizedPnL == nil || *got.RealizedPnL != 400 {
		t.Errorf("RealizedPnL = %v, want 400", got.RealizedPnL)
	}
	if got.ExitPrice == nil || *got.ExitPrice != 110 {
		t.Errorf("ExitPrice = %v, want 110", got.ExitPrice)
	}
}

func TestUpdateMissingTrade(t *testing.T) {
	store := newTestStore(t)

	trade := sampleTrade()
	trade.ID = "missing"
	if err := store.UpdateTrade(context.Background(), trade); !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("error = %v, want ErrTradeNotFound", err)
	}
}

func TestGetTradesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleTrade()
	store.SaveTrade(ctx, first)

	second := sampleTrade()
	second.Symbol = "MSFT"
	second.EntryDate = first.EntryDate.Add(24 * time.Hour)
	pnl := -50.0
	second.Status = models.TradeClosed
	second.RealizedPnL = &pnl
	store.SaveTrade(ctx, second)

	t.Run("all newest first", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{})
		if err != nil {
			t.Fatalf("GetTrades() error = %v", err)
		}
		if len(trades) != 2 {
			t.Fatalf("got %d trades, want 2", len(trades))
		}
		if trades[0].Symbol != "MSFT" {
			t.Errorf("first row = %q, want the later entry MSFT", trades[0].Symbol)
		}
	})

	t.Run("by symbol", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{Symbol: "AAPL"})
		if err != nil {
			t.Fatalf("GetTrades() error = %v", err)
		}
		if len(trades) != 1 || trades[0].Symbol != "AAPL" {
			t.Errorf("got %v, want only AAPL", trades)
		}
	})

	t.Run("by status", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{Status: models.TradeClosed})
		if err != nil {
			t.Fatalf("GetTrades() error = %v", err)
		}
		if len(trades) != 1 || trades[0].Status != models.TradeClosed {
			t.Errorf("got %v, want only the closed trade", trades)
		}
	})

	t.Run("by start date", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{StartDate: second.EntryDate})
		if err != nil {
			t.Fatalf("GetTrades() error = %v", err)
		}
		if len(trades) != 1 || trades[0].Symbol != "MSFT" {
			t.Errorf("got %v, want only the later trade", trades)
		}
	})

	t.Run("with limit", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{Limit: 1})
		if err != nil {
			t.Fatalf("GetTrades() error = %v", err)
		}
		if len(trades) != 1 {
			t.Errorf("got %d trades, want 1", len(trades))
		}
	})
}

func TestMethodAnalysisUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	store.SaveTrade(ctx, trade)

	first := &models.MethodAnalysis{
		TradeID:   trade.ID,
		Timeframe: models.TimeframeDaily,
		Indicator: models.IndicatorMACD,
		Signal:    models.SignalBuy,
	}
	if err := store.SaveMethodAnalysis(ctx, first); err != nil {
		t.Fatalf("SaveMethodAnalysis() error = %v", err)
	}

	// Re-recording the same timeframe replaces the observation.
	second := &models.MethodAnalysis{
		TradeID:    trade.ID,
		Timeframe:  models.TimeframeDaily,
		Indicator:  models.IndicatorRSI,
		Signal:     models.SignalOversold,
		Divergence: models.DivergenceBullish,
	}
	if err := store.SaveMethodAnalysis(ctx, second); err != nil {
		t.Fatalf("SaveMethodAnalysis() upsert error = %v", err)
	}

	analyses, err := store.GetMethodAnalyses(ctx, trade.ID)
	if err != nil {
		t.Fatalf("GetMethodAnalyses() error = %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("got %d analyses, want 1 after upsert", len(analyses))
	}
	if analyses[0].Indicator != models.IndicatorRSI || analyses[0].Divergence != models.DivergenceBullish {
		t.Errorf("upsert did not replace the observation: %+v", analyses[0])
	}
}

func TestMethodAnalysesTimeframeOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	store.SaveTrade(ctx, trade)

	for _, tf := range []models.Timeframe{models.TimeframeMonthly, models.TimeframeDaily, models.TimeframeWeekly} {
		err := store.SaveMethodAnalysis(ctx, &models.MethodAnalysis{
			TradeID:   trade.ID,
			Timeframe: tf,
			Indicator: models.IndicatorMACD,
			Signal:    models.SignalBuy,
		})
		if err != nil {
			t.Fatalf("SaveMethodAnalysis(%s) error = %v", tf, err)
		}
	}

	analyses, err := store.GetMethodAnalyses(ctx, trade.ID)
	if err != nil {
		t.Fatalf("GetMethodAnalyses() error = %v", err)
	}
	want := []models.Timeframe{models.TimeframeDaily, models.TimeframeWeekly, models.TimeframeMonthly}
	for i, tf := range want {
		if analyses[i].Timeframe != tf {
			t.Errorf("analyses[%d].Timeframe = %q, want %q", i, analyses[i].Timeframe, tf)
		}
	}
}

func TestMindsetTagUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	store.SaveTrade(ctx, trade)

	tag := &models.MindsetTag{TradeID: trade.ID, Tag: models.TagFOMO, Intensity: models.IntensityLow}
	if err := store.SaveMindsetTag(ctx, tag); err != nil {
		t.Fatalf("SaveMindsetTag() error = %v", err)
	}

	tag.Intensity = models.IntensityHigh
	if err := store.SaveMindsetTag(ctx, tag); err != nil {
		t.Fatalf("SaveMindsetTag() upsert error = %v", err)
	}

	tags, err := store.GetMindsetTags(ctx, trade.ID)
	if err != nil {
		t.Fatalf("GetMindsetTags() error = %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1 after upsert", len(tags))
	}
	if tags[0].Intensity != models.IntensityHigh {
		t.Errorf("Intensity = %q, want HIGH after upsert", tags[0].Intensity)
	}
}

func TestGradeHistoryAppendOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	store.SaveTrade(ctx, trade)

	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	for i, reason := range []grading.RecomputeReason{grading.ReasonTradeClose, grading.ReasonManualRecalc} {
		err := store.SaveGradeHistory(ctx, &grading.HistoryEntry{
			TradeID:    trade.ID,
			Score:      80 + float64(i),
			Overall:    grading.GradeBMinus,
			Reason:     reason,
			ComputedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveGradeHistory() error = %v", err)
		}
	}

	entries, err := store.GetGradeHistory(ctx, GradeFilter{TradeID: trade.ID})
	if err != nil {
		t.Fatalf("GetGradeHistory() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Reason != grading.ReasonManualRecalc {
		t.Errorf("newest entry reason = %q, want the later MANUAL_RECALC", entries[0].Reason)
	}

	limited, err := store.GetGradeHistory(ctx, GradeFilter{TradeID: trade.ID, Limit: 1})
	if err != nil {
		t.Fatalf("GetGradeHistory() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d entries with limit 1, want 1", len(limited))
	}
}

func TestEquityRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.GetEquity(ctx); err != nil || ok {
		t.Fatalf("GetEquity() on empty store = ok %v, err %v; want no row", ok, err)
	}

	if err := store.SetEquity(ctx, 100000); err != nil {
		t.Fatalf("SetEquity() error = %v", err)
	}
	if err := store.SetEquity(ctx, 98500.25); err != nil {
		t.Fatalf("SetEquity() upsert error = %v", err)
	}

	equity, ok, err := store.GetEquity(ctx)
	if err != nil || !ok {
		t.Fatalf("GetEquity() = ok %v, err %v", ok, err)
	}
	if equity != 98500.25 {
		t.Errorf("equity = %v, want 98500.25", equity)
	}
}
