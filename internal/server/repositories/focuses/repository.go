// Package focuses declares the focus tree store contract and its PostgreSQL
// implementation.
package focuses

import (
	"context"

	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
)

// Repository persists focus tree nodes. Reads never populate Children.
type Repository interface {
	// Create inserts focus and fills in ID and CreatedAt. A parent id that
	// does not reference an existing row yields common.ErrParentNotFound.
	Create(ctx context.Context, focus *models.Focus) (*models.Focus, error)

	// FindByID returns common.ErrorNotFound when id is unknown or malformed.
	FindByID(ctx context.Context, id string) (*models.Focus, error)

	// FindChildren lists the immediate children of parentID, oldest first.
	FindChildren(ctx context.Context, parentID string) ([]models.Focus, error)

	// FindRoot returns the user's root node or common.ErrorNotFound.
	FindRoot(ctx context.Context, userID string) (*models.Focus, error)
}
