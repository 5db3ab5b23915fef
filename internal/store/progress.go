package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *progressRepo) Record(ctx context.Context, userID string, passed bool, xp int) (*Progress, error) {
	var out *Progress
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		p, err := loadProgress(ctx, tx, userID)
		if err != nil {
			return err
		}
		exists := p != nil
		if !exists {
			p = &Progress{UserID: userID}
		}
		p.TotalExams++
		if passed {
			p.PassedExams++
		}
		p.XP += xp
		p.UpdatedAt = r.now().UTC()

		var q string
		var args []any
		if exists {
			q, args = sqlite().Update(tableProgress).
				Set("total_exams", p.TotalExams).
				Set("passed_exams", p.PassedExams).
				Set("xp", p.XP).
				Set("updated_at", toMillis(p.UpdatedAt)).
				Where(entsql.EQ("user_id", userID)).
				Query()
		} else {
			q, args = sqlite().Insert(tableProgress).
				Columns("user_id", "total_exams", "passed_exams", "xp", "updated_at").
				Values(userID, p.TotalExams, p.PassedExams, p.XP, toMillis(p.UpdatedAt)).
				Query()
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		out = p
		return nil
	})
	return out, err
}

func (r *progressRepo) Get(ctx context.Context, userID string) (*Progress, error) {
	p, err := loadProgress(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &Progress{UserID: userID}, nil
	}
	return p, nil
}

func (r *progressRepo) Reset(ctx context.Context, userID string) error {
	q, args := sqlite().Delete(tableProgress).Where(entsql.EQ("user_id", userID)).Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadProgress(ctx context.Context, q rowQuerier, userID string) (*Progress, error) {
	query, args := sqlite().Select("total_exams", "passed_exams", "xp", "updated_at").
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	p := &Progress{UserID: userID}
	var updated int64
	err := q.QueryRowContext(ctx, query, args...).Scan(&p.TotalExams, &p.PassedExams, &p.XP, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}
