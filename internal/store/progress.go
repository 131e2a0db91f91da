package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/adaptlearn/internal/subject"
)

var (
	progressSelectColumns = []string{
		"learner_id", "subject", "completion_rate", "average_score", "completed_materials", "updated_at",
	}
	progressInsertColumns = []string{
		"learner_id", "subject", "completion_rate", "average_score", "completed_materials", "updated_at", "subject_key",
	}
)

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type progressRepo struct {
	db          *sql.DB
	locks       *keyLocker
	catalogSize int
}

func (r *progressRepo) Get(ctx context.Context, learnerID, subj string) (*ProgressRecord, error) {
	rec, err := r.get(ctx, r.db, learnerID, subj)
	if err != nil {
		return nil, fmt.Errorf("get progress %s/%s: %w", learnerID, subj, err)
	}
	return rec, nil
}

func (r *progressRepo) get(ctx context.Context, q queryRower, learnerID, subj string) (*ProgressRecord, error) {
	key := keyOf(learnerID, subj)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(progressSelectColumns...).
		From(entsql.Table(progressTableName)).
		Where(entsql.And(
			entsql.EQ("learner_id", key.learner),
			entsql.EQ("subject_key", key.subject),
		)).
		Query()

	rec, err := scanProgress(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return EmptyProgress(key.learner, subject.Clean(subj)), nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *progressRepo) Update(ctx context.Context, u ProgressUpdate) (*ProgressRecord, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	u = u.normalized()
	key := keyOf(u.LearnerID, u.Subject)

	unlock := r.locks.Lock(key)
	defer unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	cur, err := r.get(ctx, tx, u.LearnerID, u.Subject)
	if err != nil {
		return nil, fmt.Errorf("read current progress: %w", err)
	}
	next := merge(cur, u, r.catalogSize)

	materials, err := json.Marshal(next.CompletedMaterials)
	if err != nil {
		return nil, fmt.Errorf("encode completed materials: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(progressTableName).
		Columns(progressInsertColumns...).
		Values(
			next.LearnerID,
			next.Subject,
			next.CompletionRate,
			next.AverageScore,
			string(materials),
			next.UpdatedAt.UTC().Format(time.RFC3339Nano),
			key.subject,
		).
		OnConflict(
			entsql.ConflictColumns("learner_id", "subject_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (r *progressRepo) List(ctx context.Context, learnerID string) ([]ProgressRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(progressSelectColumns...).
		From(entsql.Table(progressTableName)).
		Where(entsql.EQ("learner_id", strings.TrimSpace(learnerID))).
		OrderBy(entsql.Asc("subject")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(s scanner) (*ProgressRecord, error) {
	var (
		rec       ProgressRecord
		materials string
		updatedAt string
	)
	if err := s.Scan(&rec.LearnerID, &rec.Subject, &rec.CompletionRate, &rec.AverageScore, &materials, &updatedAt); err != nil {
		return nil, err
	}
	rec.CompletedMaterials = []string{}
	if materials != "" {
		if err := json.Unmarshal([]byte(materials), &rec.CompletedMaterials); err != nil {
			return nil, fmt.Errorf("decode completed materials: %w", err)
		}
	}
	if updatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err == nil {
			rec.UpdatedAt = t
		}
	}
	rec.Found = true
	return &rec, nil
}
