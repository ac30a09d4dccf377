// Package farmers persists farmer accounts.
package farmers

import (
	"context"

	"github.com/krishimitre/krishimitre/internal/server/models"
)

// Repository is the storage contract for farmer accounts. GetByEmail and
// GetByID return common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, farmer *models.Farmer) (*models.Farmer, error)
	GetByEmail(ctx context.Context, email string) (*models.Farmer, error)
	GetByID(ctx context.Context, id string) (*models.Farmer, error)
	Update(ctx context.Context, farmer *models.Farmer) error
}
