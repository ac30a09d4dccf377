package repomanager

import (
	"context"
	"database/sql"

	"github.com/krishimitre/krishimitre/internal/dbx"
	"github.com/krishimitre/krishimitre/internal/server/migrations"
	"github.com/krishimitre/krishimitre/internal/server/repositories/farmers"
	"github.com/krishimitre/krishimitre/internal/server/repositories/feedback"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Farmers(db dbx.DBTX) farmers.Repository {
	return farmers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Feedback(db dbx.DBTX) feedback.Repository {
	return feedback.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
