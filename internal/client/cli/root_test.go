package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoot_HelpAndExit(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, "help\nexit\n")
	a.Root(context.Background())

	s := out.String()
	require.Contains(t, s, "Welcome to Krishi Mitre CLI")
	require.Contains(t, s, "Available commands: login, signup")
	require.Contains(t, s, "Bye!")
}

func TestRoot_HelpWhenLoggedIn(t *testing.T) {
	fc := &fakeAPI{}
	a, out := newTestApp(t, fc, "help\nexit\n")
	logIn(t, a, fc, map[string]any{"name": "Ravi", "email": "farmer@example.com"})

	a.Root(context.Background())
	require.Contains(t, out.String(), "Available commands: profile, dashboard")
	// the prompt shows who is logged in
	require.Contains(t, out.String(), "km (farmer@example.com) >")
}

func TestRoot_UnknownCommand(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, "frobnicate\nexit\n")
	a.Root(context.Background())
	require.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRoot_DetectRequiresArgument(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, "detect\nexit\n")
	a.Root(context.Background())
	require.Contains(t, out.String(), "Usage: detect <image-file>")
}

func TestRoot_WeatherRequiresArgument(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, "weather\nexit\n")
	a.Root(context.Background())
	require.Contains(t, out.String(), "Usage: weather <place>")
}

func TestRoot_ExitsOnEOF(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{}, "")
	a.Root(context.Background())
}

func TestRoot_GatedCommandWhileLoggedOut(t *testing.T) {
	fc := &fakeAPI{}
	a, out := newTestApp(t, fc, "dashboard\nexit\n")
	a.Root(context.Background())

	require.Empty(t, fc.LastDashboardEmail)
	require.Contains(t, out.String(), "Feature locked")
	require.Contains(t, out.String(), "Bye!")
}
