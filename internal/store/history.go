package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var historyColumns = []string{
	"id", "user_id", "created_at", "session_id", "exam_id", "name", "score", "grade",
	"time_spent_minutes", "questions_correct", "total_questions",
	"auto_submitted", "passed", "status",
}

// historyRepo implements HistoryRepo.
type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Append(ctx context.Context, e *HistoryEntry, keep int) error {
	if e.Status == "" {
		e.Status = "completed"
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args := sqlite().Insert(tableHistory).
			Columns(historyColumns[1:]...).
			Values(e.UserID, toMillis(e.TakenAt), e.SessionID, e.ExamID, e.Name, e.Score, e.Grade,
				e.TimeSpentMinutes, e.QuestionsCorrect, e.TotalQuestions,
				e.AutoSubmitted, e.Passed, e.Status).
			Query()
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("insert history entry: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			e.ID = id
		}
		return trimNewest(ctx, tx, tableHistory, keep, entsql.EQ("user_id", e.UserID))
	})
}

func (r *historyRepo) List(ctx context.Context, userID string, opts QueryOpts) ([]HistoryEntry, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if opts.Filter != "" {
		preds = append(preds, entsql.EQ("exam_id", opts.Filter))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", toMillis(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", toMillis(opts.To)))
	}

	sel := sqlite().Select(historyColumns...).From(entsql.Table(tableHistory)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var takenAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &takenAt, &e.SessionID, &e.ExamID, &e.Name,
			&e.Score, &e.Grade, &e.TimeSpentMinutes, &e.QuestionsCorrect, &e.TotalQuestions,
			&e.AutoSubmitted, &e.Passed, &e.Status); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.TakenAt = fromMillis(takenAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *historyRepo) Clear(ctx context.Context, userID string) error {
	q, args := sqlite().Delete(tableHistory).Where(entsql.EQ("user_id", userID)).Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
