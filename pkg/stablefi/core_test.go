package stablefi

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := OpenWithOptions(Options{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "app.db")
	core, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer core.Close()

	if core.DBPath() != filepath.Clean(dbPath) {
		t.Fatalf("expected db path %q, got %q", dbPath, core.DBPath())
	}
}

func TestOpenIsIdempotentOnExistingDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")
	core, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	testWallet(t, core, "persisted")
	if err := core.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	core, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer core.Close()

	wallets, err := core.GetWallets()
	if err != nil {
		t.Fatalf("GetWallets: %v", err)
	}
	if len(wallets) != 1 {
		t.Fatalf("expected persisted wallet after reopen, got %d", len(wallets))
	}
}

func TestCloseNilSafe(t *testing.T) {
	var core *Core
	if err := core.Close(); err != nil {
		t.Fatalf("expected nil-safe close, got %v", err)
	}
}

func TestDefaultDelay(t *testing.T) {
	if got := defaultDelay(-1, time.Second); got != 0 {
		t.Fatalf("expected negative to disable delay, got %v", got)
	}
	if got := defaultDelay(0, time.Second); got != time.Second {
		t.Fatalf("expected fallback for zero, got %v", got)
	}
	if got := defaultDelay(2*time.Second, time.Second); got != 2*time.Second {
		t.Fatalf("expected explicit value, got %v", got)
	}
}
