package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	if email, ok := u["email"].(string); ok && email != "" {
		return fmt.Sprintf("(%s) ", email)
	}
	if name, ok := u["name"].(string); ok && name != "" {
		return fmt.Sprintf("(%s) ", name)
	}
	return ""
}

// Root runs the command loop. It reads a line, takes the first token as the
// command and dispatches to the App methods. Handlers print their own
// errors; the loop ignores the returned error so one failed command never
// ends the session. The loop exits on EOF or on "exit"/"quit".
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Krishi Mitre CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "km %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: profile, dashboard, detect <file>, rotate, weather <place>, feedback, analytics, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, signup, weather <place>, detect <file>, rotate, feedback, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "detect":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: detect <image-file>")
				continue
			}
			_ = a.Detect(ctx, args[0])

		case "rotate":
			_ = a.RecommendCrop(ctx)

		case "weather":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: weather <place>")
				continue
			}
			_ = a.Weather(ctx, strings.Join(args, " "))

		case "feedback":
			_ = a.Feedback(ctx)

		case "analytics":
			_ = a.Analytics(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
