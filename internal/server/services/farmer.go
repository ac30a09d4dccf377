// Package services contains server-side business logic. This file implements
// FarmerService: account signup and login, profile updates and the
// dashboard lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishimitre/krishimitre/internal/common"
	"github.com/krishimitre/krishimitre/internal/dbx"
	"github.com/krishimitre/krishimitre/internal/server/auth"
	"github.com/krishimitre/krishimitre/internal/server/config"
	"github.com/krishimitre/krishimitre/internal/server/models"
	"github.com/krishimitre/krishimitre/internal/server/repositories/repomanager"
)

// Seams for deterministic tests.
var (
	nowFn = time.Now
	newID = uuid.NewString
)

// SignupForm is the validated signup payload. JoinedDate is optional; when
// empty the current date is recorded.
type SignupForm struct {
	Name        string
	Email       string
	Password    string
	Location    string
	PhoneNumber string
	FarmSize    string
	JoinedDate  string
}

// FarmerService provides account-related operations:
// - Signup: create accounts and mint the first token
// - Login: verify credentials and mint tokens
// - UpdateProfile: change profile fields
// - Dashboard: look up the profile card by email
type FarmerService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewFarmerService constructs a FarmerService using repositories and server config.
func NewFarmerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *FarmerService {
	return &FarmerService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Signup creates a new account. A taken email yields common.ErrorEmailTaken.
// The password is stored as a bcrypt hash only.
func (s *FarmerService) Signup(ctx context.Context, form SignupForm) (*models.Farmer, string, error) {
	repo := s.repomanager.Farmers(s.db)

	_, err := repo.GetByEmail(ctx, form.Email)
	if err == nil {
		return nil, "", common.ErrorEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %v", err)
	}

	joined := form.JoinedDate
	if joined == "" {
		joined = nowFn().Format("2006-01-02")
	}

	farmer := &models.Farmer{
		ID:           newID(),
		Name:         form.Name,
		Email:        form.Email,
		PasswordHash: hash,
		Location:     form.Location,
		PhoneNumber:  form.PhoneNumber,
		FarmSize:     form.FarmSize,
		JoinedDate:   joined,
	}
	if _, err := repo.Create(ctx, farmer); err != nil {
		return nil, "", fmt.Errorf("error creating farmer: %v", err)
	}

	token, err := auth.GenerateToken(farmer.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %v", err)
	}
	return farmer, token, nil
}

// Login verifies the credentials and, on success, returns the farmer and a
// fresh token. Unknown emails and wrong passwords are indistinguishable to
// the caller.
func (s *FarmerService) Login(ctx context.Context, email, password string) (*models.Farmer, string, error) {
	repo := s.repomanager.Farmers(s.db)

	farmer, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(farmer.PasswordHash, []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(farmer.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %v", err)
	}
	return farmer, token, nil
}

// profileFields are the attributes UpdateProfile accepts.
var profileFields = map[string]bool{
	"name":        true,
	"location":    true,
	"phoneNumber": true,
	"farmSize":    true,
}

// UpdateProfile applies the given field changes to the farmer's profile and
// returns the updated record. Unknown fields are ignored.
func (s *FarmerService) UpdateProfile(ctx context.Context, farmerID string, fields map[string]any) (*models.Farmer, error) {
	var updated *models.Farmer

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Farmers(tx)

		farmer, err := repo.GetByID(ctx, farmerID)
		if err != nil {
			return err
		}

		for key, raw := range fields {
			value, ok := raw.(string)
			if !ok || !profileFields[key] {
				continue
			}
			switch key {
			case "name":
				farmer.Name = value
			case "location":
				farmer.Location = value
			case "phoneNumber":
				farmer.PhoneNumber = value
			case "farmSize":
				farmer.FarmSize = value
			}
		}

		if err := repo.Update(ctx, farmer); err != nil {
			return err
		}
		updated = farmer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Dashboard looks up the profile card by email.
func (s *FarmerService) Dashboard(ctx context.Context, email string) (*models.Farmer, error) {
	return s.repomanager.Farmers(s.db).GetByEmail(ctx, email)
}
