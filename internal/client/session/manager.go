// Package session owns the client-side auth session: the in-memory
// token/user pair, its durable mirror, and the access gate protecting
// logged-in features.
package session

import (
	"context"
	"time"

	"github.com/krishimitre/krishimitre/internal/client/api"
	"github.com/krishimitre/krishimitre/internal/logging"
)

// nowFn is a test seam for the signup joined-date default.
var nowFn = time.Now

// Manager is the single source of truth for "is the user logged in" and the
// only component allowed to talk to the authentication endpoints. It is not
// safe for concurrent use: the REPL issues one command at a time, which is
// the same discipline the original UI enforced by disabling submit buttons
// while a request is in flight.
type Manager struct {
	client  api.Client
	store   Store
	logger  logging.Logger
	user    User
	token   string
	loading bool
}

func NewManager(client api.Client, store Store, logger logging.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		logger: logger.With("module", "session"),
	}
}

// User returns the current user record, or nil when logged out. Note that a
// token may be present while the user is nil: some backends omit the user
// payload from the login response, and no placeholder is synthesized.
func (m *Manager) User() User { return m.user }

// Token returns the current session token, or "" when absent.
func (m *Manager) Token() string { return m.token }

// Loading reports whether an auth request is in flight.
func (m *Manager) Loading() bool { return m.loading }

// Restore populates the session from persisted storage. Storage-level
// failures degrade to an empty session: re-authenticating is always
// possible, crashing on startup is not acceptable.
func (m *Manager) Restore(ctx context.Context) {
	token, user, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "failed to restore session", "error", err)
		return
	}
	m.token = token
	m.user = user
}

// persist mirrors the in-memory state to storage. It runs strictly after
// the in-memory update so a restart right after a resolved call observes
// consistent state. A persistence failure is logged, not surfaced: the
// live session is already valid.
func (m *Manager) persist(ctx context.Context) {
	if err := m.store.Save(ctx, m.token, m.user); err != nil {
		m.logger.Warn(ctx, "failed to persist session", "error", err)
	}
}

// Login authenticates against the backend. On success the token is read
// from "token" (falling back to "accessToken") and the user from "user",
// "userInfo", or a flat email/name DTO, in that order. On failure the prior
// session state is left untouched. The raw password is never stored.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.loading = true
	defer func() { m.loading = false }()

	env, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.token = extractToken(env)
	m.user, _ = extractUser(env, loginUserExtractors)
	m.persist(ctx)
	return nil
}

// Signup creates an account. User extraction works as for login, except
// that when the server omits a user object, one is built from the submitted
// payload with joinedDate defaulting to the response's value, then the
// payload's, then the current date.
func (m *Manager) Signup(ctx context.Context, payload api.SignupRequest) error {
	m.loading = true
	defer func() { m.loading = false }()

	env, err := m.client.Signup(ctx, payload)
	if err != nil {
		return err
	}

	user, ok := extractUser(env, responseUserExtractors)
	if !ok {
		user = userFromPayload(payload, env)
	}

	m.token = extractToken(env)
	m.user = user
	m.persist(ctx)
	return nil
}

func userFromPayload(payload api.SignupRequest, env api.Envelope) User {
	joined := payload.JoinedDate
	if v, ok := asNonEmptyString(env["joinedDate"]); ok {
		joined = v
	}
	if joined == "" {
		joined = nowFn().Format("2006-01-02")
	}

	return User{
		"name":        payload.Name,
		"email":       payload.Email,
		"location":    payload.Location,
		"phoneNumber": payload.PhoneNumber,
		"farmSize":    payload.FarmSize,
		"joinedDate":  joined,
	}
}

// UpdateProfile sends a partial profile update. The request is attempted
// even without a token (the server rejects it and its message is surfaced);
// on success the server's user is preferred, then its "data" object, then
// the current user merged with the submitted fields.
func (m *Manager) UpdateProfile(ctx context.Context, fields map[string]any) error {
	m.loading = true
	defer func() { m.loading = false }()

	env, err := m.client.UpdateProfile(ctx, m.token, fields)
	if err != nil {
		return err
	}

	updated, ok := extractUser(env, profileUserExtractors)
	if !ok {
		updated = make(User, len(m.user)+len(fields))
		for k, v := range m.user {
			updated[k] = v
		}
		for k, v := range fields {
			updated[k] = v
		}
	}

	m.user = updated
	m.persist(ctx)
	return nil
}

// Logout clears the in-memory session and its persisted mirror. No network
// call is involved and calling it while already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.token = ""
	m.user = nil
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	return nil
}
