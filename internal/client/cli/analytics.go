package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Analytics renders the feedback analytics document: overall rating, the
// per-star distribution, the latest entries and the weekday trend.
func (a *App) Analytics(ctx context.Context) error {
	return a.gate.Allow(func() error {
		stats, err := a.api.FeedbackAnalytics(ctx)
		if err != nil {
			a.printError(err)
			return err
		}

		fmt.Fprintf(a.out, "Average rating: %.1f (%d responses)\n", stats.AverageRating, stats.TotalFeedback)

		for star := 5; star >= 1; star-- {
			count := stats.RatingDistribution[strconv.Itoa(star)]
			fmt.Fprintf(a.out, "  %d star: %d\n", star, count)
		}

		if len(stats.LatestFeedback) > 0 {
			fmt.Fprintln(a.out, "Latest feedback:")
			for _, f := range stats.LatestFeedback {
				fmt.Fprintf(a.out, "  [%d] %s: %s (%s)\n", f.Rating, f.Name, f.Message, f.Time)
			}
		}

		if len(stats.TrendData) > 0 {
			fmt.Fprintln(a.out, "This week:")
			for _, p := range stats.TrendData {
				fmt.Fprintf(a.out, "  %s: %d\n", p.Date, p.Count)
			}
		}
		return nil
	})
}
