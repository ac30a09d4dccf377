package services

import (
	"context"
	"testing"
	"time"

	"github.com/krishimitre/krishimitre/internal/server/models"
)

type fakeFeedbackRepo struct {
	createErr error
	created   *models.Feedback

	avg   float64
	total int

	byRating map[int]int
	latest   []*models.Feedback
	byDay    map[string]int

	sinceArg time.Time
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = fb
	return fb, nil
}

func (f *fakeFeedbackRepo) RatingSummary(ctx context.Context) (float64, int, error) {
	return f.avg, f.total, nil
}

func (f *fakeFeedbackRepo) CountByRating(ctx context.Context) (map[int]int, error) {
	return f.byRating, nil
}

func (f *fakeFeedbackRepo) Latest(ctx context.Context, limit int) ([]*models.Feedback, error) {
	return f.latest, nil
}

func (f *fakeFeedbackRepo) CountByDaySince(ctx context.Context, since time.Time) (map[string]int, error) {
	f.sinceArg = since
	return f.byDay, nil
}

func TestSubmit_StampsIDAndTime(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	freezeNow(t, at)

	repo := &fakeFeedbackRepo{}
	svc := NewFeedbackService(db, &fakeRepoManager{feedback: repo})

	err := svc.Submit(context.Background(), FeedbackForm{
		Name: "Ravi", Email: "a@b.c", Rating: 4, Category: "app", Message: "Great tool",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if repo.created == nil || repo.created.ID == "" {
		t.Fatalf("expected a stored entry with an ID, got %+v", repo.created)
	}
	if !repo.created.CreatedAt.Equal(at) {
		t.Fatalf("expected created_at %v, got %v", at, repo.created.CreatedAt)
	}
	if repo.created.Rating != 4 || repo.created.Message != "Great tool" {
		t.Fatalf("unexpected entry: %+v", repo.created)
	}
}

func TestStats_FillsDistributionAndTrend(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	freezeNow(t, at)

	today := at.Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)
	repo := &fakeFeedbackRepo{
		avg:      4.25,
		total:    12,
		byRating: map[int]int{5: 7, 4: 2, 1: 1},
		latest:   []*models.Feedback{{ID: "fb1", Name: "Ravi", Rating: 5}},
		byDay: map[string]int{
			today.Format("2006-01-02"):     1,
			yesterday.Format("2006-01-02"): 3,
		},
	}
	svc := NewFeedbackService(db, &fakeRepoManager{feedback: repo})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}

	if stats.AverageRating != 4.25 || stats.TotalFeedback != 12 {
		t.Fatalf("unexpected summary: %+v", stats)
	}

	// every star bucket is present, including empty ones
	if stats.RatingDistribution["5"] != 7 || stats.RatingDistribution["3"] != 0 || stats.RatingDistribution["2"] != 0 {
		t.Fatalf("unexpected distribution: %v", stats.RatingDistribution)
	}

	if len(stats.Trend) != 7 {
		t.Fatalf("expected a 7-day trend, got %d points", len(stats.Trend))
	}
	last := stats.Trend[6]
	if last.Date != today.Format("Mon") || last.Count != 1 {
		t.Fatalf("unexpected last trend point: %+v", last)
	}
	if stats.Trend[5].Count != 3 {
		t.Fatalf("expected yesterday's count 3, got %+v", stats.Trend[5])
	}
	if stats.Trend[0].Count != 0 {
		t.Fatalf("expected zero-filled old days, got %+v", stats.Trend[0])
	}

	wantSince := today.AddDate(0, 0, -6)
	if !repo.sinceArg.Equal(wantSince) {
		t.Fatalf("expected since %v, got %v", wantSince, repo.sinceArg)
	}
}

func TestStats_EmptyTable(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeFeedbackRepo{byRating: map[int]int{}, byDay: map[string]int{}}
	svc := NewFeedbackService(db, &fakeRepoManager{feedback: repo})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalFeedback != 0 || stats.AverageRating != 0 {
		t.Fatalf("unexpected summary: %+v", stats)
	}
	if len(stats.RatingDistribution) != 5 {
		t.Fatalf("expected all five buckets, got %v", stats.RatingDistribution)
	}
}
