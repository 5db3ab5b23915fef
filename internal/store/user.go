package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// userRepo implements UserRepo.
type userRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *userRepo) Touch(ctx context.Context, id, name string) (*User, error) {
	now := r.now().UTC()
	var out *User
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		q, args := sqlite().Select("created_at").From(entsql.Table(tableUsers)).
			Where(entsql.EQ("user_id", id)).Query()
		var created int64
		err := tx.QueryRowContext(ctx, q, args...).Scan(&created)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			created = toMillis(now)
			q, args = sqlite().Insert(tableUsers).
				Columns("user_id", "name", "created_at", "last_seen_at").
				Values(id, name, created, toMillis(now)).
				Query()
		case err != nil:
			return fmt.Errorf("load user: %w", err)
		default:
			q, args = sqlite().Update(tableUsers).
				Set("name", name).
				Set("last_seen_at", toMillis(now)).
				Where(entsql.EQ("user_id", id)).
				Query()
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		out = &User{ID: id, Name: name, CreatedAt: fromMillis(created), LastSeenAt: fromMillis(toMillis(now))}
		return nil
	})
	return out, err
}

func (r *userRepo) Recent(ctx context.Context, limit int) ([]User, error) {
	sel := sqlite().Select("user_id", "name", "created_at", "last_seen_at").
		From(entsql.Table(tableUsers)).
		OrderBy(entsql.Desc("last_seen_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var created, seen int64
		if err := rows.Scan(&u.ID, &u.Name, &created, &seen); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = fromMillis(created)
		u.LastSeenAt = fromMillis(seen)
		out = append(out, u)
	}
	return out, rows.Err()
}
