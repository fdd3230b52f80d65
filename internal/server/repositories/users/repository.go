// Package users declares the credential store contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
)

// Repository persists user credentials.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A taken username
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns common.ErrorNotFound when no user has userName.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when id is unknown.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
