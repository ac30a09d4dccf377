package cli

import (
	"context"
	"fmt"

	"github.com/krishimitre/krishimitre/internal/client/api"
)

// Feedback collects a feedback form and submits it. Feedback is open to
// everyone; when a session exists the name and email fields are prefilled
// from it.
func (a *App) Feedback(ctx context.Context) error {
	var name, email string
	if u := a.session.User(); u != nil {
		name, _ = u["name"].(string)
		email, _ = u["email"].(string)
	}

	var err error
	if name == "" {
		if name, err = getSimpleText(a.reader, "Enter your name", a.out); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = getSimpleText(a.reader, "Enter your email", a.out); err != nil {
			return err
		}
	}

	rating, err := GetIntInRange(a.reader, "Rating (1-5)", 1, 5, a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (app, crops, weather, other)", a.out)
	if err != nil {
		return err
	}
	message, err := getSimpleText(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}

	req := api.FeedbackRequest{
		Name:     name,
		Email:    email,
		Rating:   rating,
		Category: category,
		Message:  message,
	}
	if err := a.api.SubmitFeedback(ctx, req); err != nil {
		a.printError(err)
		return err
	}

	fmt.Fprintln(a.out, "Thank you for your feedback!")
	return nil
}
