package provisioning

import (
	"context"
	"log/slog"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// ClientIP is the address allowed to connect to the VPN.
	ClientIP string

	// Access results
	SSHKeyID       int64
	PrivateKeyPath string

	// Compute results
	Instance *cloud.Instance
	Address  string

	// Deploy results
	ConfigURL string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Provider cloud.Provider
	Observer Observer
	Timeouts *config.Timeouts
	Tracker  *Tracker
	Metrics  *Metrics
}

// NewContext creates a new provisioning context that logs through slog.Default.
func NewContext(ctx context.Context, cfg *config.Config, provider cloud.Provider) *Context {
	name := "unknown"
	if provider != nil {
		name = provider.Name()
	}

	observer := NewSlogObserver(slog.Default())
	metrics := NewMetrics(name)
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Provider: provider,
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
		Tracker:  NewTracker(observer, metrics),
		Metrics:  metrics,
	}
}

// SetObserver replaces the observer of the context and its tracker.
func (c *Context) SetObserver(o Observer) {
	c.Observer = o
	if c.Tracker != nil {
		c.Tracker.SetObserver(o)
	}
}
