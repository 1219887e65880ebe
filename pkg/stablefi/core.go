package stablefi

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Options controls Core initialization.
type Options struct {
	DBPath string
	Logger *slog.Logger
	// ConnectDelay simulates network latency on wallet connection.
	// Negative disables the delay; zero uses the default.
	ConnectDelay time.Duration
	// ReplyDelay simulates assistant typing latency.
	ReplyDelay time.Duration
}

// Core provides access to StableFi business logic and storage.
type Core struct {
	db           *sql.DB
	logger       *slog.Logger
	dbPath       string
	connectDelay time.Duration
	replyDelay   time.Duration
}

// Open initializes a Core using the provided database path.
func Open(dbPath string) (*Core, error) {
	return OpenWithOptions(Options{DBPath: dbPath, ConnectDelay: -1, ReplyDelay: -1})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	if opts.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	cleanPath := filepath.Clean(opts.DBPath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Warn("pragma busy_timeout failed", "err", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Warn("pragma foreign_keys failed", "err", err)
	}

	if err := initDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	return &Core{
		db:           db,
		logger:       logger,
		dbPath:       cleanPath,
		connectDelay: defaultDelay(opts.ConnectDelay, 1500*time.Millisecond),
		replyDelay:   defaultDelay(opts.ReplyDelay, 1500*time.Millisecond),
	}, nil
}

// Close releases database resources.
func (c *Core) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DBPath returns the underlying database path.
func (c *Core) DBPath() string {
	return c.dbPath
}

func defaultDelay(v, fallback time.Duration) time.Duration {
	if v < 0 {
		return 0
	}
	if v == 0 {
		return fallback
	}
	return v
}
