package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishimitre/krishimitre/internal/common"
	"github.com/krishimitre/krishimitre/internal/dbx"
	"github.com/krishimitre/krishimitre/internal/server/auth"
	"github.com/krishimitre/krishimitre/internal/server/config"
	"github.com/krishimitre/krishimitre/internal/server/models"
	farmersrepo "github.com/krishimitre/krishimitre/internal/server/repositories/farmers"
	feedbackrepo "github.com/krishimitre/krishimitre/internal/server/repositories/feedback"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeFarmersRepo struct {
	getByEmailOut *models.Farmer
	getByEmailErr error

	getByIDOut *models.Farmer
	getByIDErr error

	createErr error
	updateErr error

	created *models.Farmer
	updated *models.Farmer
}

func (f *fakeFarmersRepo) Create(ctx context.Context, farmer *models.Farmer) (*models.Farmer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = farmer
	return farmer, nil
}

func (f *fakeFarmersRepo) GetByEmail(ctx context.Context, email string) (*models.Farmer, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

func (f *fakeFarmersRepo) GetByID(ctx context.Context, id string) (*models.Farmer, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeFarmersRepo) Update(ctx context.Context, farmer *models.Farmer) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = farmer
	return nil
}

type fakeRepoManager struct {
	farmers  farmersrepo.Repository
	feedback feedbackrepo.Repository
}

func (m *fakeRepoManager) Farmers(db dbx.DBTX) farmersrepo.Repository   { return m.farmers }
func (m *fakeRepoManager) Feedback(db dbx.DBTX) feedbackrepo.Repository { return m.feedback }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func newFarmerService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *FarmerService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewFarmerService(db, rm, cfg)
}

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = orig })
}

// --- tests ---

func TestSignup_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	freezeNow(t, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))

	repo := &fakeFarmersRepo{getByEmailErr: common.ErrorNotFound}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	farmer, token, err := svc.Signup(context.Background(), SignupForm{
		Name:     "Ravi",
		Email:    "farmer@example.com",
		Password: "secret",
		Location: "Pune",
	})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	if repo.created == nil || repo.created.ID == "" {
		t.Fatalf("expected farmer persisted with an ID, got %+v", repo.created)
	}
	if farmer.JoinedDate != "2026-08-28" {
		t.Fatalf("expected joined date defaulted to today, got %q", farmer.JoinedDate)
	}
	if bcrypt.CompareHashAndPassword(farmer.PasswordHash, []byte("secret")) != nil {
		t.Fatalf("stored hash does not match the password")
	}

	id, err := auth.GetFarmerIDFromToken(token, []byte("k"))
	if err != nil || id != farmer.ID {
		t.Fatalf("token does not identify the farmer: id=%q err=%v", id, err)
	}
}

func TestSignup_KeepsProvidedJoinedDate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFarmersRepo{getByEmailErr: common.ErrorNotFound}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	farmer, _, err := svc.Signup(context.Background(), SignupForm{
		Name: "Ravi", Email: "a@b.c", Password: "x", JoinedDate: "2025-01-15",
	})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if farmer.JoinedDate != "2025-01-15" {
		t.Fatalf("expected provided joined date kept, got %q", farmer.JoinedDate)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFarmersRepo{getByEmailOut: &models.Farmer{ID: "f1", Email: "a@b.c"}}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	_, _, err := svc.Signup(context.Background(), SignupForm{Name: "Ravi", Email: "a@b.c", Password: "x"})
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("expected ErrorEmailTaken, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("no farmer should have been created")
	}
}

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	repo := &fakeFarmersRepo{getByEmailOut: &models.Farmer{ID: "f1", Email: "a@b.c", PasswordHash: hash}}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	farmer, token, err := svc.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if farmer.ID != "f1" || token == "" {
		t.Fatalf("unexpected result: farmer=%+v token=%q", farmer, token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	repo := &fakeFarmersRepo{getByEmailOut: &models.Farmer{ID: "f1", PasswordHash: hash}}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	_, _, err := svc.Login(context.Background(), "a@b.c", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFarmersRepo{getByEmailErr: common.ErrorNotFound}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	_, _, err := svc.Login(context.Background(), "missing@b.c", "secret")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestUpdateProfile_AppliesKnownStringFields(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeFarmersRepo{getByIDOut: &models.Farmer{
		ID: "f1", Name: "Ravi", Location: "Nashik", FarmSize: "2 acres",
	}}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	updated, err := svc.UpdateProfile(context.Background(), "f1", map[string]any{
		"location": "Pune",
		"farmSize": "3 acres",
		"email":    "evil@example.com", // not editable
		"name":     42,                 // wrong type, ignored
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}

	if updated.Location != "Pune" || updated.FarmSize != "3 acres" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Name != "Ravi" {
		t.Fatalf("non-string value should be ignored, got name %q", updated.Name)
	}
	if repo.updated == nil {
		t.Fatalf("expected Update to be called")
	}
}

func TestUpdateProfile_NotFoundRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeFarmersRepo{getByIDErr: common.ErrorNotFound}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	_, err := svc.UpdateProfile(context.Background(), "missing", map[string]any{"location": "Pune"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDashboard_Passthrough(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFarmersRepo{getByEmailOut: &models.Farmer{ID: "f1", Name: "Ravi"}}
	svc := newFarmerService(t, db, &fakeRepoManager{farmers: repo})

	farmer, err := svc.Dashboard(context.Background(), "a@b.c")
	if err != nil || farmer.Name != "Ravi" {
		t.Fatalf("unexpected result: %+v err=%v", farmer, err)
	}
}
