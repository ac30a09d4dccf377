// Package repomanager hands out repositories bound to a database handle.
// Passing a dbx.DBTX lets services use the same repository code inside and
// outside of transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/krishimitre/krishimitre/internal/dbx"
	"github.com/krishimitre/krishimitre/internal/server/repositories/farmers"
	"github.com/krishimitre/krishimitre/internal/server/repositories/feedback"
)

type RepositoryManager interface {
	Farmers(db dbx.DBTX) farmers.Repository
	Feedback(db dbx.DBTX) feedback.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
