// Package documents provides the PostgreSQL-backed document table.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/server/models"
)

const selectColumns = `id, user_id, name, storage_key, size, status, uploaded_at, rejected_at, signed_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts doc and fills in its id and uploaded_at. A name already
// used by the same owner yields common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) error {
	query :=
		`INSERT INTO documents (user_id, name, storage_key, size, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.UserID, doc.Name, doc.StorageKey, doc.Size, string(doc.Status)).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents ORDER BY uploaded_at DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListRejectedBefore(ctx context.Context, cutoff time.Time) ([]*models.Document, error) {
	query := `SELECT ` + selectColumns + ` FROM documents
		WHERE status = 'REJECTED' AND rejected_at <= $1
		ORDER BY rejected_at`
	return r.list(ctx, query, cutoff)
}

func (r *PostgresRepository) NamesLike(ctx context.Context, userID, base, ext string) ([]string, error) {
	query :=
		`SELECT name FROM documents
		 WHERE user_id = $1 AND (name = $2 OR name LIKE $3 ESCAPE '\')
		 `
	pattern := escapeLike(base) + `\_%` + escapeLike(ext)

	rows, err := r.db.QueryContext(ctx, query, userID, base+ext, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to select names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// UpdateStatus persists status and both lifecycle timestamps of doc.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, doc *models.Document) error {
	query := `UPDATE documents SET status = $2, rejected_at = $3, signed_at = $4 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, doc.ID, string(doc.Status), nullTime(doc.RejectedAt), nullTime(doc.SignedAt))
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, id string) (*models.Document, error) {
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*models.Document, error) {
	var (
		doc                  models.Document
		status               string
		rejectedAt, signedAt sql.NullTime
	)
	if err := s.Scan(&doc.ID, &doc.UserID, &doc.Name, &doc.StorageKey, &doc.Size, &status,
		&doc.UploadedAt, &rejectedAt, &signedAt); err != nil {
		return nil, err
	}
	doc.Status = models.Status(status)
	if rejectedAt.Valid {
		doc.RejectedAt = &rejectedAt.Time
	}
	if signedAt.Valid {
		doc.SignedAt = &signedAt.Time
	}
	return &doc, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
