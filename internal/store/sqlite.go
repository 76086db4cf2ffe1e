// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"trade-journal/internal/errors"
	"trade-journal/internal/grading"
	"trade-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Journaled trades
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		stop_loss REAL NOT NULL,
		exit_price REAL,
		position_size REAL NOT NULL,
		risk_amount REAL NOT NULL,
		realized_pnl REAL,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		entry_date DATETIME NOT NULL,
		exit_date DATETIME,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One technical observation per (trade, timeframe)
	CREATE TABLE IF NOT EXISTS method_analysis (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id TEXT NOT NULL,
		timeframe TEXT NOT NULL,
		indicator TEXT NOT NULL,
		signal TEXT NOT NULL,
		divergence TEXT NOT NULL DEFAULT 'NONE',
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(trade_id, timeframe),
		FOREIGN KEY (trade_id) REFERENCES trades(id)
	);

	-- Psychological state tags
	CREATE TABLE IF NOT EXISTS mindset_tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		intensity TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(trade_id, tag),
		FOREIGN KEY (trade_id) REFERENCES trades(id)
	);

	-- Append-only grade history
	CREATE TABLE IF NOT EXISTS grade_history (
		id TEXT PRIMARY KEY,
		trade_id TEXT NOT NULL,
		score REAL NOT NULL,
		overall TEXT NOT NULL,
		reason TEXT NOT NULL,
		computed_at DATETIME NOT NULL,
		FOREIGN KEY (trade_id) REFERENCES trades(id)
	);

	-- Single-row account equity
	CREATE TABLE IF NOT EXISTS account (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		equity REAL NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
	CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);
	CREATE INDEX IF NOT EXISTS idx_method_analysis_trade ON method_analysis(trade_id);
	CREATE INDEX IF NOT EXISTS idx_mindset_tags_trade ON mindset_tags(trade_id);
	CREATE INDEX IF NOT EXISTS idx_grade_history_trade ON grade_history(trade_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveTrade inserts a new trade, assigning an ID when absent.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (id, symbol, direction, entry_price, stop_loss, exit_price,
			position_size, risk_amount, realized_pnl, status, entry_date, exit_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.Symbol, trade.Direction, trade.EntryPrice, trade.StopLoss,
		trade.ExitPrice, trade.PositionSize, trade.RiskAmount, trade.RealizedPnL,
		trade.Status, trade.EntryDate, trade.ExitDate, trade.Notes)
	if err != nil {
		return errors.NewStoreError("trade", trade.ID, "failed to save", err)
	}
	return nil
}

// UpdateTrade persists changes to an existing trade.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade *models.Trade) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE trades SET symbol = ?, direction = ?, entry_price = ?, stop_loss = ?,
			exit_price = ?, position_size = ?, risk_amount = ?, realized_pnl = ?,
			status = ?, entry_date = ?, exit_date = ?, notes = ?
		WHERE id = ?`,
		trade.Symbol, trade.Direction, trade.EntryPrice, trade.StopLoss,
		trade.ExitPrice, trade.PositionSize, trade.RiskAmount, trade.RealizedPnL,
		trade.Status, trade.EntryDate, trade.ExitDate, trade.Notes, trade.ID)
	if err != nil {
		return errors.NewStoreError("trade", trade.ID, "failed to update", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// GetTrade fetches a single trade by ID.
func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, symbol, direction, entry_price, stop_loss, exit_price,
			position_size, risk_amount, realized_pnl, status, entry_date, exit_date, notes
		FROM trades WHERE id = ?`, id)
	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, errors.NewStoreError("trade", id, "failed to fetch", err)
	}
	return trade, nil
}

// GetTrades fetches trades matching the filter, newest entry first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := `
		SELECT id, symbol, direction, entry_price, stop_loss, exit_price,
			position_size, risk_amount, realized_pnl, status, entry_date, exit_date, notes
		FROM trades WHERE 1=1`
	var args []interface{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.StartDate.IsZero() {
		query += " AND entry_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND entry_date < ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY entry_date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("trade", "", "failed to query", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, errors.NewStoreError("trade", "", "failed to scan", err)
		}
		trades = append(trades, *trade)
	}
	return trades, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var trade models.Trade
	var exitPrice, realizedPnL sql.NullFloat64
	var exitDate sql.NullTime
	var notes sql.NullString

	err := row.Scan(&trade.ID, &trade.Symbol, &trade.Direction, &trade.EntryPrice,
		&trade.StopLoss, &exitPrice, &trade.PositionSize, &trade.RiskAmount,
		&realizedPnL, &trade.Status, &trade.EntryDate, &exitDate, &notes)
	if err != nil {
		return nil, err
	}

	if exitPrice.Valid {
		trade.ExitPrice = &exitPrice.Float64
	}
	if realizedPnL.Valid {
		trade.RealizedPnL = &realizedPnL.Float64
	}
	if exitDate.Valid {
		trade.ExitDate = &exitDate.Time
	}
	trade.Notes = notes.String
	return &trade, nil
}

// SaveMethodAnalysis upserts the observation for a (trade, timeframe)
// pair; the UNIQUE constraint enforces at most one per timeframe.
func (s *SQLiteStore) SaveMethodAnalysis(ctx context.Context, analysis *models.MethodAnalysis) error {
	divergence := analysis.Divergence
	if divergence == "" {
		divergence = models.DivergenceNone
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO method_analysis (trade_id, timeframe, indicator, signal, divergence, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(trade_id, timeframe) DO UPDATE SET
			indicator = excluded.indicator,
			signal = excluded.signal,
			divergence = excluded.divergence,
			notes = excluded.notes`,
		analysis.TradeID, analysis.Timeframe, analysis.Indicator,
		analysis.Signal, divergence, analysis.Notes)
	if err != nil {
		return errors.NewStoreError("method_analysis", analysis.TradeID, "failed to save", err)
	}
	return nil
}

// GetMethodAnalyses fetches a trade's observations in timeframe order.
func (s *SQLiteStore) GetMethodAnalyses(ctx context.Context, tradeID string) ([]models.MethodAnalysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_id, timeframe, indicator, signal, divergence, notes
		FROM method_analysis WHERE trade_id = ?
		ORDER BY CASE timeframe WHEN 'DAILY' THEN 0 WHEN 'WEEKLY' THEN 1 ELSE 2 END`,
		tradeID)
	if err != nil {
		return nil, errors.NewStoreError("method_analysis", tradeID, "failed to query", err)
	}
	defer rows.Close()

	var analyses []models.MethodAnalysis
	for rows.Next() {
		var ma models.MethodAnalysis
		var notes sql.NullString
		if err := rows.Scan(&ma.TradeID, &ma.Timeframe, &ma.Indicator, &ma.Signal, &ma.Divergence, &notes); err != nil {
			return nil, errors.NewStoreError("method_analysis", tradeID, "failed to scan", err)
		}
		ma.Notes = notes.String
		analyses = append(analyses, ma)
	}
	return analyses, rows.Err()
}

// SaveMindsetTag upserts a tag, replacing the intensity on repeat.
func (s *SQLiteStore) SaveMindsetTag(ctx context.Context, tag *models.MindsetTag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mindset_tags (trade_id, tag, intensity)
		VALUES (?, ?, ?)
		ON CONFLICT(trade_id, tag) DO UPDATE SET intensity = excluded.intensity`,
		tag.TradeID, tag.Tag, tag.Intensity)
	if err != nil {
		return errors.NewStoreError("mindset_tag", tag.TradeID, "failed to save", err)
	}
	return nil
}

// GetMindsetTags fetches a trade's mindset tags.
func (s *SQLiteStore) GetMindsetTags(ctx context.Context, tradeID string) ([]models.MindsetTag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_id, tag, intensity FROM mindset_tags WHERE trade_id = ? ORDER BY tag`,
		tradeID)
	if err != nil {
		return nil, errors.NewStoreError("mindset_tag", tradeID, "failed to query", err)
	}
	defer rows.Close()

	var tags []models.MindsetTag
	for rows.Next() {
		var tag models.MindsetTag
		if err := rows.Scan(&tag.TradeID, &tag.Tag, &tag.Intensity); err != nil {
			return nil, errors.NewStoreError("mindset_tag", tradeID, "failed to scan", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// SaveGradeHistory appends a grade record; history rows are never
// updated or deleted.
func (s *SQLiteStore) SaveGradeHistory(ctx context.Context, entry *grading.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ComputedAt.IsZero() {
		entry.ComputedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO grade_history (id, trade_id, score, overall, reason, computed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TradeID, entry.Score, entry.Overall, entry.Reason, entry.ComputedAt)
	if err != nil {
		return errors.NewStoreError("grade_history", entry.TradeID, "failed to save", err)
	}
	return nil
}

// GetGradeHistory fetches grade records, newest first.
func (s *SQLiteStore) GetGradeHistory(ctx context.Context, filter GradeFilter) ([]grading.HistoryEntry, error) {
	query := `SELECT id, trade_id, score, overall, reason, computed_at FROM grade_history WHERE 1=1`
	var args []interface{}

	if filter.TradeID != "" {
		query += " AND trade_id = ?"
		args = append(args, filter.TradeID)
	}
	query += " ORDER BY computed_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("grade_history", filter.TradeID, "failed to query", err)
	}
	defer rows.Close()

	var entries []grading.HistoryEntry
	for rows.Next() {
		var entry grading.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.TradeID, &entry.Score, &entry.Overall, &entry.Reason, &entry.ComputedAt); err != nil {
			return nil, errors.NewStoreError("grade_history", filter.TradeID, "failed to scan", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetEquity returns the stored equity and whether a row exists.
func (s *SQLiteStore) GetEquity(ctx context.Context) (float64, bool, error) {
	var equity float64
	err := s.db.QueryRowContext(ctx, `SELECT equity FROM account WHERE id = 1`).Scan(&equity)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.NewStoreError("account", "1", "failed to fetch", err)
	}
	return equity, true, nil
}

// SetEquity upserts the single account equity row.
func (s *SQLiteStore) SetEquity(ctx context.Context, equity float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, equity, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET equity = excluded.equity, updated_at = CURRENT_TIMESTAMP`,
		equity)
	if err != nil {
		return errors.NewStoreError("account", "1", "failed to save", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
