package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
)

const artifactsTable = "artifacts"

// ArtifactRepo keeps the four artifacts of the current training run as rows
// of the artifacts table. It is an alternative to artifact.DirStore for
// deployments that already ship a history database.
type ArtifactRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

var _ artifact.Store = (*ArtifactRepo)(nil)

// Save replaces the stored set inside a single transaction.
func (r *ArtifactRepo) Save(ctx context.Context, s *artifact.Set) (err error) {
	if _, err := s.RunID(); err != nil {
		return fmt.Errorf("save artifacts: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save artifacts: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query, args := r.b.Delete(artifactsTable).Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save artifacts: clear: %w", err)
	}

	for _, n := range artifact.Names() {
		e := s.Envelopes[n]
		query, args := r.b.Insert(artifactsTable).
			Columns("name", "run_id", "format_version", "created_at", "accuracy", "payload").
			Values(string(e.Name), e.RunID, e.FormatVersion, e.CreatedAt.UnixNano(), e.Accuracy, e.Payload).
			Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save artifacts: insert %s: %w", n, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save artifacts: commit: %w", err)
	}
	return nil
}

// Load reads the stored set. Rows with unknown names are ignored.
func (r *ArtifactRepo) Load(ctx context.Context) (*artifact.Set, error) {
	query, args := r.b.Select("name", "run_id", "format_version", "created_at", "accuracy", "payload").
		From(entsql.Table(artifactsTable)).
		Where(entsql.In("name", artifactNames()...)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	defer rows.Close()

	set := artifact.NewSet()
	for rows.Next() {
		var (
			e       artifact.Envelope
			name    string
			created int64
		)
		if err := rows.Scan(&name, &e.RunID, &e.FormatVersion, &created, &e.Accuracy, &e.Payload); err != nil {
			return nil, fmt.Errorf("load artifacts: scan: %w", err)
		}
		e.Name = artifact.Name(name)
		e.CreatedAt = time.Unix(0, created)
		set.Put(e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}

	if missing := set.Missing(); len(missing) > 0 {
		return nil, &artifact.ErrIncomplete{Missing: missing}
	}
	return set, nil
}

// Exists reports whether all four members are stored.
func (r *ArtifactRepo) Exists(ctx context.Context) (bool, error) {
	query, args := r.b.Select(entsql.Count("*")).
		From(entsql.Table(artifactsTable)).
		Where(entsql.In("name", artifactNames()...)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check artifacts: %w", err)
	}
	return n == len(artifact.Names()), nil
}

func artifactNames() []any {
	names := artifact.Names()
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
