package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/quillhq/quill/internal/config"
)

func sqliteLoader(t *testing.T, calls *int) Loader {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "provider_test.db")
	t.Setenv("QUILL_PROVIDER_TEST_URL", "sqlite://"+dbPath)

	return func() (*config.Config, error) {
		if calls != nil {
			*calls++
		}
		cfg := config.DefaultConfig()
		cfg.Database.URLEnv = "QUILL_PROVIDER_TEST_URL"
		return cfg, nil
	}
}

func TestCurrentBeforeCreate(t *testing.T) {
	p := NewProviderWithLoader(sqliteLoader(t, nil))

	if _, err := p.Current(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestAdapterIsMemoized(t *testing.T) {
	calls := 0
	p := NewProviderWithLoader(sqliteLoader(t, &calls))
	ctx := context.Background()

	first, err := p.Adapter(ctx)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}
	defer p.Reset()

	second, err := p.Adapter(ctx)
	if err != nil {
		t.Fatalf("Failed on second create: %v", err)
	}
	if first != second {
		t.Error("Expected second create to return the cached adapter")
	}
	if calls != 1 {
		t.Errorf("Expected config to be loaded once, got %d loads", calls)
	}

	current, err := p.Current()
	if err != nil {
		t.Fatalf("Current failed after create: %v", err)
	}
	if current != first {
		t.Error("Expected Current to return the created adapter")
	}
}

func TestResetClearsAdapter(t *testing.T) {
	p := NewProviderWithLoader(sqliteLoader(t, nil))
	ctx := context.Background()

	first, err := p.Adapter(ctx)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}

	if err := p.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if _, err := p.Current(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Expected ErrNotInitialized after reset, got %v", err)
	}

	second, err := p.Adapter(ctx)
	if err != nil {
		t.Fatalf("Failed to create adapter after reset: %v", err)
	}
	defer p.Reset()

	if first == second {
		t.Error("Expected a new adapter instance after reset")
	}
}

func TestResetWhenUninitialized(t *testing.T) {
	p := NewProviderWithLoader(sqliteLoader(t, nil))

	if err := p.Reset(); err != nil {
		t.Fatalf("Reset on uninitialized provider should be a no-op, got %v", err)
	}
}

func TestFailedCreateLeavesUninitialized(t *testing.T) {
	loadErr := errors.New("config unavailable")
	p := NewProviderWithLoader(func() (*config.Config, error) {
		return nil, loadErr
	})

	if _, err := p.Adapter(context.Background()); !errors.Is(err, loadErr) {
		t.Fatalf("Expected load error to propagate, got %v", err)
	}

	if _, err := p.Current(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Expected provider to remain uninitialized, got %v", err)
	}
}

func TestConcurrentCreateConverges(t *testing.T) {
	calls := 0
	p := NewProviderWithLoader(sqliteLoader(t, &calls))
	ctx := context.Background()
	defer p.Reset()

	const goroutines = 16
	adapters := make([]Adapter, goroutines)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := p.Adapter(ctx)
			if err != nil {
				t.Errorf("Concurrent create failed: %v", err)
				return
			}
			adapters[i] = a
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if adapters[i] != adapters[0] {
			t.Fatalf("Goroutine %d got a different adapter instance", i)
		}
	}
	if calls != 1 {
		t.Errorf("Expected exactly one construction, got %d config loads", calls)
	}
}
