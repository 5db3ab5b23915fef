package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// certificateRepo implements CertificateRepo.
type certificateRepo struct {
	db *sql.DB
}

func (r *certificateRepo) Issue(ctx context.Context, c *Certificate) error {
	if c.Status == "" {
		c.Status = "verified"
	}
	q, args := sqlite().Insert(tableCertificates).
		Columns("user_id", "created_at", "credential_id", "exam_id", "title", "score", "grade", "tier", "status").
		Values(c.UserID, toMillis(c.IssuedAt), c.CredentialID, c.ExamID, c.Title, c.Score, c.Grade, c.Tier, c.Status).
		Query()
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		c.ID = id
	}
	return nil
}

func (r *certificateRepo) List(ctx context.Context, userID string) ([]Certificate, error) {
	q, args := sqlite().Select("id", "user_id", "created_at", "credential_id", "exam_id", "title", "score", "grade", "tier", "status").
		From(entsql.Table(tableCertificates)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query certificates: %w", err)
	}
	defer rows.Close()

	var out []Certificate
	for rows.Next() {
		var c Certificate
		var issued int64
		if err := rows.Scan(&c.ID, &c.UserID, &issued, &c.CredentialID, &c.ExamID, &c.Title,
			&c.Score, &c.Grade, &c.Tier, &c.Status); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		c.IssuedAt = fromMillis(issued)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *certificateRepo) Clear(ctx context.Context, userID string) error {
	q, args := sqlite().Delete(tableCertificates).Where(entsql.EQ("user_id", userID)).Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("clear certificates: %w", err)
	}
	return nil
}
