// Package signatures provides the append-only, PostgreSQL-backed signature table.
package signatures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends sig. An order already taken for the document yields
// common.ErrVersionConflict so the caller can retry with a fresh view.
func (r *PostgresRepository) Create(ctx context.Context, sig *models.Signature) error {
	query :=
		`INSERT INTO signatures (document_id, user_id, sign_order, sha256, signed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		sig.DocumentID, sig.UserID, sig.Order, sig.Digest, sig.SignedAt).Scan(&sig.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrVersionConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context, documentID string) (int, int, error) {
	query := `SELECT COUNT(*), COALESCE(MAX(sign_order), 0) FROM signatures WHERE document_id = $1`

	var count, maxOrder int
	if err := r.db.QueryRowContext(ctx, query, documentID).Scan(&count, &maxOrder); err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return count, maxOrder, nil
}

func (r *PostgresRepository) ListByDocument(ctx context.Context, documentID string) ([]*models.Signature, error) {
	query :=
		`SELECT id, document_id, user_id, sign_order, sha256, signed_at FROM signatures
		 WHERE document_id = $1
		 ORDER BY sign_order
		 `
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select signatures: %w", err)
	}
	defer rows.Close()

	var result []*models.Signature
	for rows.Next() {
		var s models.Signature
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.UserID, &s.Order, &s.Digest, &s.SignedAt); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Latest returns the highest-ordered signature, or common.ErrNotFound.
func (r *PostgresRepository) Latest(ctx context.Context, documentID string) (*models.Signature, error) {
	query :=
		`SELECT id, document_id, user_id, sign_order, sha256, signed_at FROM signatures
		 WHERE document_id = $1
		 ORDER BY sign_order DESC
		 LIMIT 1
		 `
	var s models.Signature
	err := r.db.QueryRowContext(ctx, query, documentID).Scan(&s.ID, &s.DocumentID, &s.UserID, &s.Order, &s.Digest, &s.SignedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM signatures WHERE document_id = $1`, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete signatures: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
