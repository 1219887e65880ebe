package stablefi

import (
	"database/sql"
	"fmt"
)

func initDatabase(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS wallets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('decentralized', 'exchange', 'manual')),
			chains TEXT,
			platform TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS holdings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			wallet_id TEXT NOT NULL REFERENCES wallets(id) ON DELETE CASCADE,
			token TEXT NOT NULL,
			chain TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL CHECK(category IN ('crypto', 'tokenised_mmf', 'tokenised_gold', 'stablecoin')),
			balance REAL NOT NULL,
			price REAL NOT NULL,
			value REAL NOT NULL,
			apy_7d REAL NOT NULL DEFAULT 0,
			profit REAL NOT NULL DEFAULT 0,
			purchase_time TEXT,
			purchase_price REAL
		)
	`); err != nil {
		return err
	}
	if err := exec(tx, "CREATE INDEX IF NOT EXISTS idx_holdings_wallet ON holdings(wallet_id)"); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS favorites (
			product_id TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS institution_profile (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			company_name TEXT NOT NULL,
			expected_investment TEXT NOT NULL,
			expected_yield TEXT NOT NULL,
			investment_period TEXT NOT NULL,
			has_own_wallet INTEGER NOT NULL DEFAULT 0,
			wallet_platform TEXT,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			company_name TEXT NOT NULL DEFAULT '',
			current_step INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'in_progress' CHECK(status IN ('in_progress', 'submitted')),
			checked_docs TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS activity_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			wallet_id TEXT,
			product_id TEXT,
			details TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS assistant_settings (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			provider TEXT NOT NULL DEFAULT 'canned',
			base_url TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			api_key TEXT NOT NULL DEFAULT ''
		)
	`); err != nil {
		return err
	}

	return tx.Commit()
}

func exec(tx *sql.Tx, query string) error {
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("exec schema statement: %w", err)
	}
	return nil
}
