package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/krishimitre/krishimitre/internal/dbx"
	"github.com/krishimitre/krishimitre/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {

	query :=
		`INSERT INTO feedback (id, name, email, rating, category, message, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		fb.ID, fb.Name, fb.Email, fb.Rating, fb.Category, fb.Message, fb.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fb, nil
}

func (r *PostgresRepository) RatingSummary(ctx context.Context) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM feedback`

	var avg float64
	var total int
	if err := r.db.QueryRowContext(ctx, query).Scan(&avg, &total); err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return avg, total, nil
}

func (r *PostgresRepository) CountByRating(ctx context.Context) (map[int]int, error) {
	query := `SELECT rating, COUNT(*) FROM feedback GROUP BY rating`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return counts, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, limit int) ([]*models.Feedback, error) {
	query :=
		`SELECT id, name, email, rating, category, message, created_at FROM feedback
		 ORDER BY created_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Feedback
	for rows.Next() {
		fb := &models.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.Name, &fb.Email, &fb.Rating, &fb.Category, &fb.Message, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByDaySince(ctx context.Context, since time.Time) (map[string]int, error) {
	query :=
		`SELECT to_char(created_at, 'YYYY-MM-DD'), COUNT(*) FROM feedback
		 WHERE created_at >= $1
		 GROUP BY 1
		 `

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return counts, nil
}
