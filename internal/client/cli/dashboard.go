package cli

import (
	"context"
	"fmt"
)

// Dashboard fetches and renders the farmer profile card for the logged-in
// user.
func (a *App) Dashboard(ctx context.Context) error {
	return a.gate.Allow(func() error {
		email, _ := a.session.User()["email"].(string)

		d, err := a.api.Dashboard(ctx, email)
		if err != nil {
			a.printError(err)
			return err
		}

		fmt.Fprintf(a.out, "Name:         %s\n", d.Name)
		fmt.Fprintf(a.out, "Email:        %s\n", d.Email)
		fmt.Fprintf(a.out, "Location:     %s\n", d.Location)
		fmt.Fprintf(a.out, "Phone number: %s\n", d.PhoneNumber)
		fmt.Fprintf(a.out, "Farm size:    %s\n", d.FarmSize)
		fmt.Fprintf(a.out, "Joined:       %s\n", d.JoinedDate)
		return nil
	})
}
