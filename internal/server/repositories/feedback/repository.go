// Package feedback persists feedback forms and serves the aggregate
// queries behind the analytics view.
package feedback

import (
	"context"
	"time"

	"github.com/krishimitre/krishimitre/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)

	// RatingSummary returns the average rating and the total number of
	// entries. An empty table yields (0, 0, nil).
	RatingSummary(ctx context.Context) (avg float64, total int, err error)

	// CountByRating returns entry counts keyed by rating value.
	CountByRating(ctx context.Context) (map[int]int, error)

	// Latest returns the most recent entries, newest first.
	Latest(ctx context.Context, limit int) ([]*models.Feedback, error)

	// CountByDaySince returns per-day entry counts (keyed "YYYY-MM-DD")
	// for entries created at or after since.
	CountByDaySince(ctx context.Context, since time.Time) (map[string]int, error)
}
