package focuses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focuskeeper/internal/common"
	"github.com/dmitrijs2005/focuskeeper/internal/dbx"
	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, focus *models.Focus) (*models.Focus, error) {
	query :=
		`INSERT INTO focuses (user_id, parent_focus_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, focus.UserID, focus.ParentFocusID, focus.Name).
		Scan(&focus.ID, &focus.CreatedAt)
	if err != nil {
		switch {
		case dbx.IsForeignKeyViolation(err), dbx.IsInvalidTextRepresentation(err):
			return nil, common.ErrParentNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return focus, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Focus, error) {
	query :=
		`SELECT id, user_id, parent_focus_id, name, created_at FROM focuses
		 WHERE id = $1`

	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) FindRoot(ctx context.Context, userID string) (*models.Focus, error) {
	query :=
		`SELECT id, user_id, parent_focus_id, name, created_at FROM focuses
		 WHERE user_id = $1 AND parent_focus_id IS NULL`

	return r.findOne(ctx, query, userID)
}

func (r *PostgresRepository) FindChildren(ctx context.Context, parentID string) ([]models.Focus, error) {
	query :=
		`SELECT id, user_id, parent_focus_id, name, created_at FROM focuses
		 WHERE parent_focus_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		if dbx.IsInvalidTextRepresentation(err) {
			return []models.Focus{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	children := make([]models.Focus, 0)
	for rows.Next() {
		f, err := scanFocus(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		children = append(children, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return children, nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.Focus, error) {
	f, err := scanFocus(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFocus(s scanner) (*models.Focus, error) {
	var (
		f      models.Focus
		parent sql.NullString
	)
	if err := s.Scan(&f.ID, &f.UserID, &parent, &f.Name, &f.CreatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		f.ParentFocusID = &parent.String
	}
	return &f, nil
}
