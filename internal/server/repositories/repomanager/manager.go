// Package repomanager vends repositories bound to a database handle, so the
// same code path serves plain connections and transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/focuskeeper/internal/dbx"
	"github.com/dmitrijs2005/focuskeeper/internal/server/repositories/focuses"
	"github.com/dmitrijs2005/focuskeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Focuses(db dbx.DBTX) focuses.Repository
}
