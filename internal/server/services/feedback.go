package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/krishimitre/krishimitre/internal/server/models"
	"github.com/krishimitre/krishimitre/internal/server/repositories/repomanager"
)

// FeedbackForm is the validated feedback payload.
type FeedbackForm struct {
	Name     string
	Email    string
	Rating   int
	Category string
	Message  string
}

// TrendPoint is one day of the feedback trend, labelled by weekday.
type TrendPoint struct {
	Date  string
	Count int
}

// FeedbackStats is the analytics document: overall rating, per-star
// distribution, the five most recent entries and a 7-day trend.
type FeedbackStats struct {
	AverageRating      float64
	TotalFeedback      int
	RatingDistribution map[string]int
	Latest             []*models.Feedback
	Trend              []TrendPoint
}

// FeedbackService stores feedback forms and aggregates them for the
// analytics view.
type FeedbackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFeedbackService(db *sql.DB, m repomanager.RepositoryManager) *FeedbackService {
	return &FeedbackService{db: db, repomanager: m}
}

// Submit stores one feedback entry.
func (s *FeedbackService) Submit(ctx context.Context, form FeedbackForm) error {
	fb := &models.Feedback{
		ID:        newID(),
		Name:      form.Name,
		Email:     form.Email,
		Rating:    form.Rating,
		Category:  form.Category,
		Message:   form.Message,
		CreatedAt: nowFn(),
	}

	if _, err := s.repomanager.Feedback(s.db).Create(ctx, fb); err != nil {
		return fmt.Errorf("error saving feedback: %v", err)
	}
	return nil
}

// Stats aggregates the stored feedback. The trend always covers the last
// seven days, oldest first, with zero counts filled in.
func (s *FeedbackService) Stats(ctx context.Context) (*FeedbackStats, error) {
	repo := s.repomanager.Feedback(s.db)

	avg, total, err := repo.RatingSummary(ctx)
	if err != nil {
		return nil, err
	}

	byRating, err := repo.CountByRating(ctx)
	if err != nil {
		return nil, err
	}
	distribution := map[string]int{}
	for star := 1; star <= 5; star++ {
		distribution[strconv.Itoa(star)] = byRating[star]
	}

	latest, err := repo.Latest(ctx, 5)
	if err != nil {
		return nil, err
	}

	today := nowFn().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -6)
	byDay, err := repo.CountByDaySince(ctx, since)
	if err != nil {
		return nil, err
	}

	trend := make([]TrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := since.AddDate(0, 0, i)
		trend = append(trend, TrendPoint{
			Date:  day.Format("Mon"),
			Count: byDay[day.Format("2006-01-02")],
		})
	}

	return &FeedbackStats{
		AverageRating:      avg,
		TotalFeedback:      total,
		RatingDistribution: distribution,
		Latest:             latest,
		Trend:              trend,
	}, nil
}
