package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const roundEventsTable = "round_events"

type roundRepo struct {
	db  *sql.DB
	b   *entsql.DialectBuilder
	seq *sequenceCounter
}

func (r *roundRepo) AppendRound(ctx context.Context, data RoundEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := r.b.Insert(roundEventsTable).
		Columns("sequence", "timestamp", "session_id", "run_id", "text",
			"user_emotion", "predicted_emotion", "model_used", "confidence", "ai_correct").
		Values(seq, time.Now().UnixMilli(), data.SessionID, data.RunID, data.Text,
			data.UserEmotion, data.PredictedEmotion, data.ModelUsed, data.Confidence, boolToInt(data.AICorrect)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append round: %w", err)
	}
	return nil
}

func (r *roundRepo) QueryRounds(ctx context.Context, opts QueryOpts) ([]RoundEventRecord, error) {
	sel := r.b.Select("sequence", "timestamp", "session_id", "run_id", "text",
		"user_emotion", "predicted_emotion", "model_used", "confidence", "ai_correct").
		From(entsql.Table(roundEventsTable))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundEventRecord
	for rows.Next() {
		var (
			rec       RoundEventRecord
			ts        int64
			aiCorrect int
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.RunID, &rec.Text,
			&rec.UserEmotion, &rec.PredictedEmotion, &rec.ModelUsed, &rec.Confidence, &aiCorrect); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.AICorrect = aiCorrect != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *roundRepo) RoundStats(ctx context.Context) (RoundStats, error) {
	var stats RoundStats

	query, args := r.b.Select(entsql.Count("*"), "COALESCE(SUM(ai_correct), 0)", "COUNT(DISTINCT session_id)").
		From(entsql.Table(roundEventsTable)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Rounds, &stats.AICorrect, &stats.Sessions); err != nil {
		return RoundStats{}, fmt.Errorf("round stats: %w", err)
	}

	query, args = r.b.Select("user_emotion", entsql.Count("*"), "COALESCE(SUM(ai_correct), 0)").
		From(entsql.Table(roundEventsTable)).
		GroupBy("user_emotion").
		OrderBy("user_emotion").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return RoundStats{}, fmt.Errorf("round stats by emotion: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var es EmotionStats
		if err := rows.Scan(&es.Emotion, &es.Rounds, &es.AICorrect); err != nil {
			return RoundStats{}, fmt.Errorf("scan emotion stats: %w", err)
		}
		stats.ByEmotion = append(stats.ByEmotion, es)
	}
	return stats, rows.Err()
}

func (r *roundRepo) ClearRounds(ctx context.Context) (int64, error) {
	query, args := r.b.Delete(roundEventsTable).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear rounds: %w", err)
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
