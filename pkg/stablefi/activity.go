package stablefi

import "database/sql"

// logActivity records an audit entry. Failures are logged and swallowed;
// the triggering action must not fail because the audit write did.
func (c *Core) logActivity(entry ActivityLog) {
	_, err := c.db.Exec(`
		INSERT INTO activity_logs (action, wallet_id, product_id, details)
		VALUES (?, ?, ?, ?)
	`, entry.Action, entry.WalletID, entry.ProductID, entry.Details)
	if err != nil {
		c.logger.Warn("activity log write failed", "action", entry.Action, "err", err)
	}
}

// GetActivityLogs returns recent activity entries, newest first.
func (c *Core) GetActivityLogs(limit, offset int) ([]ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := c.db.Query(
		"SELECT id, action, wallet_id, product_id, details, created_at FROM activity_logs ORDER BY id DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query activity logs", err)
	}
	defer rows.Close()

	var logs []ActivityLog
	for rows.Next() {
		var entry ActivityLog
		var walletID, productID, details, createdAt sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Action, &walletID, &productID, &details, &createdAt); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan activity log", err)
		}
		if walletID.Valid {
			entry.WalletID = &walletID.String
		}
		if productID.Valid {
			entry.ProductID = &productID.String
		}
		if details.Valid {
			entry.Details = &details.String
		}
		if createdAt.Valid {
			entry.CreatedAt = &createdAt.String
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
