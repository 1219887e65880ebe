package stablefi

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestDB creates a temporary database for testing and returns a Core
// instance. The caller should defer cleanup() to remove the temp file.
func setupTestDB(t *testing.T) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stablefi-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	core, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

// testWallet connects a demo wallet and returns it.
func testWallet(t *testing.T, core *Core, name string) *Wallet {
	t.Helper()
	wallet, err := core.ConnectWallet(ConnectWalletRequest{
		Name:    name,
		Address: "0x" + name,
		Kind:    "decentralized",
		Chains:  []string{"Ethereum"},
	})
	if err != nil {
		t.Fatalf("failed to connect test wallet: %v", err)
	}
	return wallet
}
