package stablefi

import (
	"database/sql"
	"strings"
)

// GetHoldings returns holdings, optionally scoped to one wallet.
func (c *Core) GetHoldings(walletID string) ([]Holding, error) {
	query := `
		SELECT id, wallet_id, token, chain, category, balance, price, value, apy_7d, profit, purchase_time, purchase_price
		FROM holdings
	`
	params := []any{}
	if walletID = strings.TrimSpace(walletID); walletID != "" {
		query += " WHERE wallet_id = ?"
		params = append(params, walletID)
	}
	query += " ORDER BY id"

	rows, err := c.db.Query(query, params...)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query holdings", err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		var h Holding
		var category string
		var purchaseTime sql.NullString
		var purchasePrice any
		if err := rows.Scan(&h.ID, &h.WalletID, &h.Token, &h.Chain, &category, &h.Balance, &h.Price, &h.Value, &h.APY7d, &h.Profit, &purchaseTime, &purchasePrice); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan holding", err)
		}
		h.Category = Category(category)
		if purchaseTime.Valid {
			h.PurchaseTime = &purchaseTime.String
		}
		if h.PurchasePrice, err = scanNullAmount(purchasePrice); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan purchase price", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}
