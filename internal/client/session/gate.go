package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Gate guards logged-in features. It re-evaluates the Manager's live state
// on every use and has no state of its own: when a user is present the
// protected view runs unmodified, otherwise a locked panel is shown and the
// view never runs.
type Gate struct {
	manager  *Manager
	in       *bufio.Reader
	out      io.Writer
	fallback func()
	onLogin  func()
}

type GateOption func(*Gate)

// WithFallback replaces the built-in locked panel.
func WithFallback(f func()) GateOption {
	return func(g *Gate) { g.fallback = f }
}

// WithLoginTrigger sets the callback invoked when the user accepts the
// locked panel's login offer.
func WithLoginTrigger(f func()) GateOption {
	return func(g *Gate) { g.onLogin = f }
}

// NewGate builds a gate over the manager's live state. The reader is shared
// with the rest of the CLI so the locked panel's prompt does not steal
// buffered input.
func NewGate(m *Manager, in *bufio.Reader, out io.Writer, opts ...GateOption) *Gate {
	g := &Gate{manager: m, in: in, out: out}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allow runs view if a user is present; otherwise it renders the fallback
// and returns nil without invoking view.
func (g *Gate) Allow(view func() error) error {
	if g.manager.User() != nil {
		return view()
	}

	if g.fallback != nil {
		g.fallback()
		return nil
	}
	g.renderLocked()
	return nil
}

func (g *Gate) renderLocked() {
	fmt.Fprintln(g.out, "Feature locked.")
	fmt.Fprintln(g.out, "Please log in to access this feature and unlock all the tools we have for you.")

	if g.onLogin == nil {
		return
	}
	fmt.Fprint(g.out, "Log in now? [y/N] ")
	line, err := g.in.ReadString('\n')
	if err != nil && line == "" {
		return
	}
	if strings.EqualFold(strings.TrimSpace(line), "y") {
		g.onLogin()
	}
}
