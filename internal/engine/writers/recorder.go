// Package writers persists engine output. Rows live in an in-memory DuckDB
// database and are exported to parquet after every write when an output
// directory is configured.
package writers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

const (
	signalsTable   = "signals"
	proposalsTable = "proposals"
)

// Recorder implements provider.SignalRecorder on DuckDB.
type Recorder struct {
	db        *sql.DB
	outputDir string
	sq        squirrel.StatementBuilderType
	mu        sync.Mutex
}

var _ provider.SignalRecorder = (*Recorder)(nil)

// SignalRow is a recorded signal as read back from the store.
type SignalRow struct {
	ID        string
	RunID     string
	Signal    types.Signal
	Reasoning string
}

// ProposalRow is a recorded proposal as read back from the store.
type ProposalRow struct {
	ID         string
	RunID      string
	Symbol     string
	Side       types.Side
	AssetType  types.AssetType
	Quantity   float64
	LimitPrice float64
	Notional   float64
	Strategy   string
	OrderID    optional.Option[string]
	CreatedAt  time.Time
}

// NewRecorder creates a Recorder. An empty outputDir keeps rows in memory only.
func NewRecorder(outputDir string) *Recorder {
	return &Recorder{
		db:        nil,
		outputDir: outputDir,
		sq:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		mu:        sync.Mutex{},
	}
}

// Initialize opens the database and creates the tables.
func (r *Recorder) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.outputDir != "" {
		if err := os.MkdirAll(r.outputDir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to create output directory", err)
		}
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to open DuckDB connection", err)
	}

	r.db = db

	_, err = r.db.Exec(`
		CREATE TABLE IF NOT EXISTS signals (
			id TEXT PRIMARY KEY,
			run_id TEXT,
			symbol TEXT,
			direction TEXT,
			score INTEGER,
			confidence TEXT,
			current_price DOUBLE,
			suggested_entry DOUBLE,
			suggested_stop DOUBLE,
			suggested_target DOUBLE,
			technical_score INTEGER,
			sentiment_points INTEGER,
			ml_points INTEGER,
			regime_adjustment INTEGER,
			sentiment_score DOUBLE,
			ml_probability DOUBLE,
			market_regime TEXT,
			strategy_name TEXT,
			reasoning TEXT,
			timestamp TIMESTAMP
		)
	`)
	if err != nil {
		r.db.Close()
		r.db = nil

		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to create signals table", err)
	}

	_, err = r.db.Exec(`
		CREATE TABLE IF NOT EXISTS proposals (
			id TEXT PRIMARY KEY,
			run_id TEXT,
			symbol TEXT,
			side TEXT,
			asset_type TEXT,
			quantity DOUBLE,
			limit_price DOUBLE,
			notional DOUBLE,
			strategy TEXT,
			order_id TEXT,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		r.db.Close()
		r.db = nil

		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to create proposals table", err)
	}

	return nil
}

// RecordSignal implements provider.SignalRecorder.
func (r *Recorder) RecordSignal(ctx context.Context, runID string, signal types.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return errors.New(errors.ErrCodeRecorderFailed, "recorder not initialized")
	}

	query, args, err := r.sq.
		Insert(signalsTable).
		Columns("id", "run_id", "symbol", "direction", "score", "confidence", "current_price",
			"suggested_entry", "suggested_stop", "suggested_target", "technical_score",
			"sentiment_points", "ml_points", "regime_adjustment", "sentiment_score",
			"ml_probability", "market_regime", "strategy_name", "reasoning", "timestamp").
		Values(uuid.NewString(), runID, signal.Symbol, string(signal.Direction), signal.Score,
			string(signal.Confidence), signal.CurrentPrice, signal.SuggestedEntry, signal.SuggestedStop,
			signal.SuggestedTarget, signal.Breakdown.Technical, signal.Breakdown.Sentiment,
			signal.Breakdown.ML, signal.Breakdown.RegimeAdjustment, signal.SentimentScore,
			signal.MLProbability, string(signal.MarketRegime), signal.StrategyName,
			signal.ReasoningText(), signal.Timestamp).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to build signal insert", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to insert signal", err)
	}

	return r.export(signalsTable, "timestamp")
}

// RecordProposal implements provider.SignalRecorder. orderID is None when the broker declined.
func (r *Recorder) RecordProposal(ctx context.Context, runID string, proposal types.TradeProposal, orderID optional.Option[string]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return errors.New(errors.ErrCodeRecorderFailed, "recorder not initialized")
	}

	var order any
	if orderID.IsSome() {
		order = orderID.Unwrap()
	}

	query, args, err := r.sq.
		Insert(proposalsTable).
		Columns("id", "run_id", "symbol", "side", "asset_type", "quantity", "limit_price",
			"notional", "strategy", "order_id", "created_at").
		Values(proposal.ID, runID, proposal.Symbol, string(proposal.Side), string(proposal.AssetType),
			proposal.Quantity, proposal.LimitPrice, proposal.Notional(), proposalStrategy(proposal),
			order, proposal.CreatedAt).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to build proposal insert", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to insert proposal", err)
	}

	return r.export(proposalsTable, "created_at")
}

// Signals returns the signals recorded for a run in insertion time order.
func (r *Recorder) Signals(ctx context.Context, runID string) ([]SignalRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil, errors.New(errors.ErrCodeRecorderFailed, "recorder not initialized")
	}

	query, args, err := r.sq.
		Select("id", "run_id", "symbol", "direction", "score", "confidence", "current_price",
			"suggested_entry", "suggested_stop", "suggested_target", "technical_score",
			"sentiment_points", "ml_points", "regime_adjustment", "sentiment_score",
			"ml_probability", "market_regime", "strategy_name", "reasoning", "timestamp").
		From(signalsTable).
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("timestamp ASC", "score DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to build signal query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to query signals", err)
	}
	defer rows.Close()

	var result []SignalRow

	for rows.Next() {
		var (
			row                           SignalRow
			direction, confidence, regime string
		)

		s := &row.Signal

		err := rows.Scan(&row.ID, &row.RunID, &s.Symbol, &direction, &s.Score, &confidence,
			&s.CurrentPrice, &s.SuggestedEntry, &s.SuggestedStop, &s.SuggestedTarget,
			&s.Breakdown.Technical, &s.Breakdown.Sentiment, &s.Breakdown.ML,
			&s.Breakdown.RegimeAdjustment, &s.SentimentScore, &s.MLProbability, &regime,
			&s.StrategyName, &row.Reasoning, &s.Timestamp)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to scan signal", err)
		}

		s.Direction = types.Direction(direction)
		s.Confidence = types.Confidence(confidence)
		s.MarketRegime = types.MarketRegime(regime)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to read signals", err)
	}

	return result, nil
}

// Proposals returns the proposals recorded for a run in creation order.
func (r *Recorder) Proposals(ctx context.Context, runID string) ([]ProposalRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil, errors.New(errors.ErrCodeRecorderFailed, "recorder not initialized")
	}

	query, args, err := r.sq.
		Select("id", "run_id", "symbol", "side", "asset_type", "quantity", "limit_price",
			"notional", "strategy", "order_id", "created_at").
		From(proposalsTable).
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to build proposal query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to query proposals", err)
	}
	defer rows.Close()

	var result []ProposalRow

	for rows.Next() {
		var (
			row             ProposalRow
			side, assetType string
			orderID         sql.NullString
		)

		err := rows.Scan(&row.ID, &row.RunID, &row.Symbol, &side, &assetType, &row.Quantity,
			&row.LimitPrice, &row.Notional, &row.Strategy, &orderID, &row.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to scan proposal", err)
		}

		row.Side = types.Side(side)
		row.AssetType = types.AssetType(assetType)
		row.OrderID = optional.None[string]()

		if orderID.Valid {
			row.OrderID = optional.Some(orderID.String)
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRecorderFailed, "failed to read proposals", err)
	}

	return result, nil
}

// GetSignalCount returns the number of signals stored.
func (r *Recorder) GetSignalCount() (int, error) {
	return r.count(signalsTable)
}

// GetProposalCount returns the number of proposals stored.
func (r *Recorder) GetProposalCount() (int, error) {
	return r.count(proposalsTable)
}

// Flush forces an export of both tables.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return errors.New(errors.ErrCodeRecorderFailed, "recorder not initialized")
	}

	if err := r.export(signalsTable, "timestamp"); err != nil {
		return err
	}

	return r.export(proposalsTable, "created_at")
}

// OutputPath returns the parquet file for a table, or "" when rows stay in memory.
func (r *Recorder) OutputPath(table string) string {
	if r.outputDir == "" {
		return ""
	}

	return filepath.Join(r.outputDir, table+".parquet")
}

// Close releases database resources.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeRecorderFailed, "failed to close database", err)
		}

		r.db = nil
	}

	return nil
}

func (r *Recorder) count(table string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return 0, errors.New(errors.ErrCodeRecorderFailed, "recorder not initialized")
	}

	query, args, err := r.sq.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeRecorderFailed, err, "failed to build %s count", table)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrapf(errors.ErrCodeRecorderFailed, err, "failed to count %s", table)
	}

	return count, nil
}

// export must be called with the lock held.
func (r *Recorder) export(table, orderBy string) error {
	path := r.OutputPath(table)
	if path == "" {
		return nil
	}

	_, err := r.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM %s ORDER BY %s ASC)
		TO '%s' (FORMAT PARQUET)
	`, table, orderBy, path))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeRecorderFailed, err, "failed to export %s to parquet", table)
	}

	return nil
}

func proposalStrategy(p types.TradeProposal) string {
	if p.Options.IsSome() {
		return p.Options.Unwrap().Strategy
	}

	if p.Signal.IsSome() {
		return p.Signal.Unwrap().StrategyName
	}

	return ""
}
