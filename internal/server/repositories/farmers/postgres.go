package farmers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/krishimitre/krishimitre/internal/common"
	"github.com/krishimitre/krishimitre/internal/dbx"
	"github.com/krishimitre/krishimitre/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, farmer *models.Farmer) (*models.Farmer, error) {

	query :=
		`INSERT INTO farmers (id, name, email, password_hash, location, phone_number, farm_size, joined_date)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		farmer.ID, farmer.Name, farmer.Email, farmer.PasswordHash,
		farmer.Location, farmer.PhoneNumber, farmer.FarmSize, farmer.JoinedDate)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return farmer, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Farmer, error) {
	query :=
		`SELECT id, name, email, password_hash, location, phone_number, farm_size, joined_date FROM farmers
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Farmer, error) {
	query :=
		`SELECT id, name, email, password_hash, location, phone_number, farm_size, joined_date FROM farmers
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, farmer *models.Farmer) error {
	query :=
		`UPDATE farmers
		 SET name = $2, location = $3, phone_number = $4, farm_size = $5
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		farmer.ID, farmer.Name, farmer.Location, farmer.PhoneNumber, farmer.FarmSize)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Farmer, error) {
	farmer := &models.Farmer{}
	err := row.Scan(&farmer.ID, &farmer.Name, &farmer.Email, &farmer.PasswordHash,
		&farmer.Location, &farmer.PhoneNumber, &farmer.FarmSize, &farmer.JoinedDate)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return farmer, nil
}
