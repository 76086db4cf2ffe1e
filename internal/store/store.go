// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"trade-journal/internal/grading"
	"trade-journal/internal/models"
)

// DataStore defines the interface for journal persistence.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)

	// Method analysis
	SaveMethodAnalysis(ctx context.Context, analysis *models.MethodAnalysis) error
	GetMethodAnalyses(ctx context.Context, tradeID string) ([]models.MethodAnalysis, error)

	// Mindset tags
	SaveMindsetTag(ctx context.Context, tag *models.MindsetTag) error
	GetMindsetTags(ctx context.Context, tradeID string) ([]models.MindsetTag, error)

	// Grade history (append-only)
	SaveGradeHistory(ctx context.Context, entry *grading.HistoryEntry) error
	GetGradeHistory(ctx context.Context, filter GradeFilter) ([]grading.HistoryEntry, error)

	// Account equity
	GetEquity(ctx context.Context) (float64, bool, error)
	SetEquity(ctx context.Context, equity float64) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol    string
	Status    models.TradeStatus
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// GradeFilter represents filters for querying grade history.
type GradeFilter struct {
	TradeID string
	Limit   int
}
