package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// activityRepo implements ActivityRepo.
type activityRepo struct {
	db *sql.DB
}

func (r *activityRepo) Append(ctx context.Context, a *Activity, keep int) error {
	data, err := json.Marshal(a.Data)
	if err != nil {
		return fmt.Errorf("marshal activity data: %w", err)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args := sqlite().Insert(tableActivity).
			Columns("user_id", "created_at", "action", "exam_id", "data").
			Values(a.UserID, toMillis(a.At), string(a.Action), a.ExamID, string(data)).
			Query()
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			a.ID = id
		}
		return trimNewest(ctx, tx, tableActivity, keep, nil)
	})
}

func (r *activityRepo) Recent(ctx context.Context, opts QueryOpts) ([]Activity, error) {
	sel := sqlite().Select("id", "user_id", "created_at", "action", "exam_id", "data").
		From(entsql.Table(tableActivity)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if opts.Filter != "" {
		sel.Where(entsql.EQ("user_id", opts.Filter))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var at int64
		var action string
		var data sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &at, &action, &a.ExamID, &data); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.At = fromMillis(at)
		a.Action = ActivityAction(action)
		if data.Valid && data.String != "" && data.String != "null" {
			if err := json.Unmarshal([]byte(data.String), &a.Data); err != nil {
				return nil, fmt.Errorf("decode activity %d data: %w", a.ID, err)
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
