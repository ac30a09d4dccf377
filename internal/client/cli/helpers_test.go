package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/krishimitre/krishimitre/internal/client/api"
	"github.com/krishimitre/krishimitre/internal/client/session"
	"github.com/krishimitre/krishimitre/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeAPI is an in-memory api.Client recording the last request of each
// kind.
type fakeAPI struct {
	LoginEnv  api.Envelope
	LoginErr  error
	SignupEnv api.Envelope
	SignupErr error
	UpdateEnv api.Envelope
	UpdateErr error

	DetectRaw json.RawMessage
	DetectErr error
	CropResp  *api.CropResponse
	CropErr   error
	Stats     *api.FeedbackStats
	StatsErr  error
	Dash      *api.Dashboard
	DashErr   error

	FeedbackErr error

	LastSignup         api.SignupRequest
	LastUpdateToken    string
	LastUpdateFields   map[string]any
	LastDetectFilename string
	LastCrop           api.CropRequest
	LastFeedback       api.FeedbackRequest
	LastDashboardEmail string

	UpdateCalled   bool
	FeedbackCalled bool
	CropCalled     bool
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (api.Envelope, error) {
	return f.LoginEnv, f.LoginErr
}

func (f *fakeAPI) Signup(ctx context.Context, req api.SignupRequest) (api.Envelope, error) {
	f.LastSignup = req
	return f.SignupEnv, f.SignupErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, token string, fields map[string]any) (api.Envelope, error) {
	f.UpdateCalled = true
	f.LastUpdateToken = token
	f.LastUpdateFields = fields
	return f.UpdateEnv, f.UpdateErr
}

func (f *fakeAPI) DetectDisease(ctx context.Context, filename string, image io.Reader) (json.RawMessage, error) {
	f.LastDetectFilename = filename
	return f.DetectRaw, f.DetectErr
}

func (f *fakeAPI) RecommendCrop(ctx context.Context, req api.CropRequest) (*api.CropResponse, error) {
	f.CropCalled = true
	f.LastCrop = req
	return f.CropResp, f.CropErr
}

func (f *fakeAPI) SubmitFeedback(ctx context.Context, req api.FeedbackRequest) error {
	f.FeedbackCalled = true
	f.LastFeedback = req
	return f.FeedbackErr
}

func (f *fakeAPI) FeedbackAnalytics(ctx context.Context) (*api.FeedbackStats, error) {
	return f.Stats, f.StatsErr
}

func (f *fakeAPI) Dashboard(ctx context.Context, email string) (*api.Dashboard, error) {
	f.LastDashboardEmail = email
	return f.Dash, f.DashErr
}

// newTestApp builds an App over a fresh sqlite session store, with stdin
// replaced by the given script and stdout captured in a buffer.
func newTestApp(t *testing.T, fc api.Client, script string) (*App, *bytes.Buffer) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+t.TempDir()+"/session.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	out := &bytes.Buffer{}
	reader := bufio.NewReader(strings.NewReader(script))

	a := &App{
		api:     fc,
		session: session.NewManager(fc, session.NewSQLiteStore(db), logger),
		reader:  reader,
		out:     out,
		logger:  logger,
	}
	a.gate = session.NewGate(a.session, reader, out)
	return a, out
}

// logIn establishes a session on the app via the fake client.
func logIn(t *testing.T, a *App, fc *fakeAPI, user map[string]any) {
	t.Helper()
	fc.LoginEnv = api.Envelope{"token": "test-token", "user": user}
	require.NoError(t, a.session.Login(context.Background(), "farmer@example.com", "secret"))
}
