package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/krishimitre/krishimitre/internal/client/api"
	"github.com/krishimitre/krishimitre/internal/client/config"
	"github.com/krishimitre/krishimitre/internal/client/session"
	"github.com/krishimitre/krishimitre/internal/client/weather"
	"github.com/krishimitre/krishimitre/internal/logging"
)

// App wires the interactive CLI together: the backend API client, the
// weather services, the persisted session and the access gate that guards
// logged-in features. All commands read from a single shared bufio.Reader
// so prompts issued mid-command do not lose buffered input.
type App struct {
	config  *config.Config
	api     api.Client
	weather *weather.Client
	session *session.Manager
	gate    *session.Gate
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
	logger  logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := session.OpenDB(ctx, cfg.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	manager := session.NewManager(apiClient, session.NewSQLiteStore(db), logger)

	return &App{
		config:  cfg,
		api:     apiClient,
		weather: weather.NewClient(cfg.ForecastBaseURL, cfg.GeocodingBaseURL, cfg.ReverseGeocodeBaseURL, cfg.RequestTimeout),
		session: manager,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		logger:  logger,
	}, nil
}

// Run restores any persisted session, arms the access gate and enters the
// command loop. It returns when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	a.session.Restore(ctx)
	a.gate = session.NewGate(a.session, a.reader, a.out,
		session.WithLoginTrigger(func() { _ = a.Login(ctx) }))

	a.Root(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

// displayName picks something friendly to greet the user with.
func (a *App) displayName() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	if name, ok := u["name"].(string); ok && name != "" {
		return name
	}
	if email, ok := u["email"].(string); ok {
		return email
	}
	return ""
}

// printError renders an API error for the terminal. Field-level validation
// messages are listed under the top-level message, sorted for stable output.
func (a *App) printError(err error) {
	if errors.Is(err, api.ErrUnavailable) {
		fmt.Fprintln(a.out, "Server unavailable, please try again later.")
		return
	}
	if ae, ok := api.AsAuthError(err); ok {
		fmt.Fprintln(a.out, ae.Message)
		fields := make([]string, 0, len(ae.FieldErrors))
		for f := range ae.FieldErrors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "  %s: %s\n", f, ae.FieldErrors[f])
		}
		return
	}
	fmt.Fprintf(a.out, "Error: %v\n", err)
}
