package cli

import (
	"context"
	"fmt"
)

// profileFields are the editable profile attributes, in prompt order.
var profileFields = []struct {
	key   string
	label string
}{
	{"name", "Name"},
	{"location", "Location"},
	{"phoneNumber", "Phone number"},
	{"farmSize", "Farm size"},
}

// Profile lets a logged-in user edit their profile. Each field shows its
// current value; pressing Enter keeps it. Only changed fields are sent.
func (a *App) Profile(ctx context.Context) error {
	return a.gate.Allow(func() error {
		fields := map[string]any{}
		for _, f := range profileFields {
			current, _ := a.session.User()[f.key].(string)
			prompt := fmt.Sprintf("%s [%s] (Enter to keep)", f.label, current)
			v, err := getSimpleText(a.reader, prompt, a.out)
			if err != nil {
				return err
			}
			if v != "" && v != current {
				fields[f.key] = v
			}
		}

		if len(fields) == 0 {
			fmt.Fprintln(a.out, "Nothing to update.")
			return nil
		}

		if err := a.session.UpdateProfile(ctx, fields); err != nil {
			a.printError(err)
			return err
		}
		fmt.Fprintln(a.out, "Profile updated.")
		return nil
	})
}
