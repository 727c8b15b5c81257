package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/quillhq/quill/internal/config"
)

// ErrNotInitialized is returned by Current when no adapter has been created
// yet. It signals a call-ordering bug in the caller, not a database failure.
var ErrNotInitialized = errors.New("database adapter not initialized")

// Loader supplies the configuration used to select and connect an adapter.
type Loader func() (*config.Config, error)

// Provider owns at most one live adapter per instance. Creation is lazy and
// idempotent: the first Adapter call reads configuration, selects the backend
// by the configured provider value, connects it and caches the result; later
// calls return the cached adapter without touching configuration again. Reset
// closes and discards the cached adapter so the next Adapter call rebuilds it
// from current configuration.
type Provider struct {
	mu      sync.Mutex
	adapter Adapter
	load    Loader
}

// NewProvider returns a provider backed by the standard config loader.
func NewProvider() *Provider {
	return NewProviderWithLoader(config.Load)
}

// NewProviderWithLoader returns a provider with a custom config source.
func NewProviderWithLoader(load Loader) *Provider {
	return &Provider{load: load}
}

// Adapter returns the cached adapter, creating and connecting it on first
// call. Concurrent first calls converge on a single construction. A failed
// construction leaves the provider uninitialized; the error propagates
// unchanged to the caller.
func (p *Provider) Adapter(ctx context.Context) (Adapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.adapter != nil {
		return p.adapter, nil
	}

	cfg, err := p.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	url, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter := NewAdapter(cfg.Database.Provider)
	if err := adapter.Connect(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to connect %s adapter: %w", adapter.DialectName(), err)
	}

	p.adapter = adapter
	return adapter, nil
}

// Current returns the cached adapter without creating one. It fails with
// ErrNotInitialized when Adapter has not been called successfully yet.
func (p *Provider) Current() (Adapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.adapter == nil {
		return nil, ErrNotInitialized
	}
	return p.adapter, nil
}

// Reset unconditionally clears the cached adapter, closing it first so its
// connections are not leaked. The next Adapter call reconstructs from current
// configuration. Safe to call when uninitialized.
func (p *Provider) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.adapter == nil {
		return nil
	}

	err := p.adapter.Close()
	p.adapter = nil
	return err
}
