package stablefi

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// demoHoldings is the fixed position set seeded into every connected wallet.
// Values are live marks; there is no real chain integration behind them.
var demoHoldings = []Holding{
	{Token: "USDY", Balance: 125000, Value: NewAmount(130421.25), Price: NewAmount(1.0434), APY7d: 5.25, Profit: NewAmount(5421.25), Chain: "Ethereum", Category: CategoryMMF},
	{Token: "BUIDL", Balance: 500000, Value: NewAmount(500000), Price: NewAmount(1.0), APY7d: 4.89, Profit: NewAmount(12450.00), Chain: "Ethereum", Category: CategoryMMF},
	{Token: "PAXG", Balance: 15.5, Value: NewAmount(40235.50), Price: NewAmount(2596.16), APY7d: 0, Profit: NewAmount(2235.50), Chain: "Ethereum", Category: CategoryGold},
	{Token: "XAUT", Balance: 8.2, Value: NewAmount(21288.40), Price: NewAmount(2596.15), APY7d: 0, Profit: NewAmount(1288.40), Chain: "Ethereum", Category: CategoryGold},
	{Token: "ETH", Balance: 25.8, Value: NewAmount(96750.00), Price: NewAmount(3750.00), APY7d: 3.2, Profit: NewAmount(8750.00), Chain: "Ethereum", Category: CategoryCrypto},
	{Token: "BTC", Balance: 1.25, Value: NewAmount(131250.00), Price: NewAmount(105000.00), APY7d: 0, Profit: NewAmount(21250.00), Chain: "Bitcoin", Category: CategoryCrypto},
	{Token: "USDC", Balance: 85000, Value: NewAmount(85000), Price: NewAmount(1.0), APY7d: 0, Profit: NewAmount(0), Chain: "Ethereum", Category: CategoryStablecoin},
	{Token: "USDT", Balance: 50000, Value: NewAmount(50000), Price: NewAmount(1.0), APY7d: 0, Profit: NewAmount(0), Chain: "BSC", Category: CategoryStablecoin},
}

// ConnectWallet registers a wallet and seeds its demo holdings. A fixed
// artificial delay stands in for the absent network round-trip.
func (c *Core) ConnectWallet(req ConnectWalletRequest) (*Wallet, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	if req.Name == "" || req.Address == "" {
		return nil, NewError(ErrCodeInvalidInput, "name and address are required")
	}
	if !isValidWalletKind(req.Kind) {
		return nil, NewError(ErrCodeInvalidInput, "invalid wallet kind: "+req.Kind)
	}
	if req.Kind == "manual" {
		return nil, NewError(ErrCodeInvalidInput, "manual wallets are added with a manual asset entry")
	}

	if c.connectDelay > 0 {
		time.Sleep(c.connectDelay)
	}

	wallet := Wallet{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Address:  req.Address,
		Kind:     req.Kind,
		Chains:   req.Chains,
		Platform: req.Platform,
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "begin connect wallet", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertWalletTx(tx, wallet); err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert wallet", err)
	}
	for _, h := range demoHoldings {
		h.WalletID = wallet.ID
		if err := insertHoldingTx(tx, h); err != nil {
			return nil, WrapError(ErrCodeDatabase, "insert holding", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "commit connect wallet", err)
	}

	c.logActivity(ActivityLog{Action: "wallet_connected", WalletID: &wallet.ID, Details: ptrString(wallet.Name)})
	c.logger.Info("wallet connected", "wallet_id", wallet.ID, "kind", wallet.Kind)
	return &wallet, nil
}

// AddManualWallet registers a manually declared wallet holding exactly one
// asset. The holding's value is the historical cost at entry time
// (quantity x purchase price), deliberately not re-marked to a live price.
func (c *Core) AddManualWallet(name, address string, asset ManualAssetInput) (*Wallet, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	asset.Token = strings.ToUpper(strings.TrimSpace(asset.Token))
	if name == "" || address == "" || asset.Token == "" {
		return nil, NewError(ErrCodeInvalidInput, "name, address and token are required")
	}
	if asset.Quantity <= 0 || asset.PurchasePrice <= 0 {
		return nil, NewError(ErrCodeValidation, "quantity and purchase price must be positive")
	}
	if !IsValidCategory(asset.Category) {
		return nil, NewError(ErrCodeInvalidInput, "invalid category: "+string(asset.Category))
	}

	wallet := Wallet{
		ID:      uuid.NewString(),
		Name:    name,
		Address: address,
		Kind:    "manual",
	}
	cost := NewAmount(asset.PurchasePrice).Mul(NewAmount(asset.Quantity).Decimal)
	holding := Holding{
		WalletID:      wallet.ID,
		Token:         asset.Token,
		Category:      asset.Category,
		Balance:       asset.Quantity,
		Price:         NewAmount(asset.PurchasePrice),
		Value:         Amount{cost},
		PurchaseTime:  ptrString(asset.PurchaseTime),
		PurchasePrice: amountPtr(NewAmount(asset.PurchasePrice)),
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "begin manual wallet", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertWalletTx(tx, wallet); err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert wallet", err)
	}
	if err := insertHoldingTx(tx, holding); err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert holding", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "commit manual wallet", err)
	}

	c.logActivity(ActivityLog{Action: "wallet_added_manually", WalletID: &wallet.ID, Details: ptrString(asset.Token)})
	return &wallet, nil
}

// RemoveWallet deletes a wallet and cascades to its holdings.
func (c *Core) RemoveWallet(walletID string) error {
	if strings.TrimSpace(walletID) == "" {
		return NewError(ErrCodeInvalidInput, "wallet id is required")
	}

	tx, err := c.db.Begin()
	if err != nil {
		return WrapError(ErrCodeDatabase, "begin remove wallet", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Explicit delete rather than relying on the FK pragma being honored.
	if _, err := tx.Exec("DELETE FROM holdings WHERE wallet_id = ?", walletID); err != nil {
		return WrapError(ErrCodeDatabase, "delete holdings", err)
	}
	result, err := tx.Exec("DELETE FROM wallets WHERE id = ?", walletID)
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete wallet", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete wallet", err)
	}
	if rows == 0 {
		return NewError(ErrCodeNotFound, "wallet not found: "+walletID)
	}
	if err := tx.Commit(); err != nil {
		return WrapError(ErrCodeDatabase, "commit remove wallet", err)
	}

	c.logActivity(ActivityLog{Action: "wallet_removed", WalletID: &walletID})
	c.logger.Info("wallet removed", "wallet_id", walletID)
	return nil
}

// GetWallets returns all wallets, oldest first.
func (c *Core) GetWallets() ([]Wallet, error) {
	rows, err := c.db.Query("SELECT id, name, address, kind, chains, platform, created_at FROM wallets ORDER BY created_at, id")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query wallets", err)
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		var w Wallet
		var chains, platform, createdAt sql.NullString
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Kind, &chains, &platform, &createdAt); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan wallet", err)
		}
		if chains.Valid && chains.String != "" {
			w.Chains = strings.Split(chains.String, ",")
		}
		if platform.Valid {
			w.Platform = &platform.String
		}
		if createdAt.Valid {
			w.CreatedAt = &createdAt.String
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func insertWalletTx(tx *sql.Tx, w Wallet) error {
	var chains *string
	if len(w.Chains) > 0 {
		joined := strings.Join(w.Chains, ",")
		chains = &joined
	}
	_, err := tx.Exec(`
		INSERT INTO wallets (id, name, address, kind, chains, platform)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.ID, w.Name, w.Address, w.Kind, chains, w.Platform)
	return err
}

func insertHoldingTx(tx *sql.Tx, h Holding) error {
	_, err := tx.Exec(`
		INSERT INTO holdings (wallet_id, token, chain, category, balance, price, value, apy_7d, profit, purchase_time, purchase_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.WalletID, h.Token, h.Chain, string(h.Category), h.Balance, h.Price, h.Value, h.APY7d, h.Profit, h.PurchaseTime, h.PurchasePrice)
	return err
}

func isValidWalletKind(kind string) bool {
	for _, k := range WalletKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func ptrString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func amountPtr(v Amount) *Amount {
	return &v
}
