package stablefi

import "sort"

// Aggregation over holding sets. Every function here is a pure function of
// its inputs: no database access, no hidden state, order-independent.

// TotalValue sums holding values. All values are USD-denominated.
func TotalValue(holdings []Holding) Amount {
	var total Amount
	for _, h := range holdings {
		total = total.Plus(h.Value)
	}
	return total
}

// TotalProfit sums per-holding unrealized profit.
func TotalProfit(holdings []Holding) Amount {
	var total Amount
	for _, h := range holdings {
		total = total.Plus(h.Profit)
	}
	return total
}

// WeightedAPY returns the value-weighted average yield rate in percent.
// Returns exactly 0 when the total value is 0.
func WeightedAPY(holdings []Holding) float64 {
	total := TotalValue(holdings)
	if total.IsZero() {
		return 0
	}
	var weighted Amount
	for _, h := range holdings {
		weighted = Amount{weighted.Add(h.Value.Mul(NewAmount(h.APY7d).Decimal))}
	}
	f, _ := weighted.Div(total.Decimal).Float64()
	return f
}

// CategoryBreakdown maps category to summed value. Categories with zero
// aggregate value are omitted so chart and legend code never sees a zero
// slice.
func CategoryBreakdown(holdings []Holding) map[Category]Amount {
	sums := map[Category]Amount{}
	for _, h := range holdings {
		sums[h.Category] = sums[h.Category].Plus(h.Value)
	}
	for cat, sum := range sums {
		if sum.IsZero() {
			delete(sums, cat)
		}
	}
	return sums
}

// WalletBreakdown maps wallet ID to the summed value of its holdings.
// Wallets without holdings appear with a zero sum.
func WalletBreakdown(wallets []Wallet, holdings []Holding) map[string]Amount {
	sums := make(map[string]Amount, len(wallets))
	for _, w := range wallets {
		sums[w.ID] = Amount{}
	}
	for _, h := range holdings {
		sums[h.WalletID] = sums[h.WalletID].Plus(h.Value)
	}
	return sums
}

// GetDashboardSummary derives the headline figures for the dashboard,
// optionally scoped to one wallet.
func (c *Core) GetDashboardSummary(walletID string) (DashboardSummary, error) {
	holdings, err := c.GetHoldings(walletID)
	if err != nil {
		return DashboardSummary{}, err
	}
	wallets, err := c.GetWallets()
	if err != nil {
		return DashboardSummary{}, err
	}

	total := TotalValue(holdings)
	apy := WeightedAPY(holdings)
	// total * (apy/100) / 12
	monthly := Amount{total.Mul(NewAmount(apy).Decimal).Div(NewAmountFromInt(1200).Decimal)}
	if total.IsZero() {
		monthly = Amount{}
	}

	return DashboardSummary{
		TotalValue:       total,
		TotalProfit:      TotalProfit(holdings),
		WeightedAPY:      apy,
		HoldingCount:     len(holdings),
		WalletCount:      len(wallets),
		EstMonthlyIncome: monthly,
	}, nil
}

// GetBreakdown computes a category or wallet value breakdown, optionally
// scoped to one wallet. Entries are ordered by descending value.
func (c *Core) GetBreakdown(by, walletID string) ([]BreakdownEntry, error) {
	holdings, err := c.GetHoldings(walletID)
	if err != nil {
		return nil, err
	}
	total := TotalValue(holdings)

	switch by {
	case "category":
		sums := CategoryBreakdown(holdings)
		entries := make([]BreakdownEntry, 0, len(sums))
		for _, cat := range categoryOrder {
			sum, ok := sums[cat]
			if !ok {
				continue
			}
			info := categoryTable[cat]
			entries = append(entries, BreakdownEntry{
				Key:     string(cat),
				Label:   info.Name,
				LabelZh: info.NameZh,
				Color:   info.Color,
				Value:   sum,
				Percent: percentShare(sum, total),
			})
		}
		sortBreakdown(entries)
		return entries, nil
	case "wallet":
		wallets, err := c.GetWallets()
		if err != nil {
			return nil, err
		}
		sums := WalletBreakdown(wallets, holdings)
		entries := make([]BreakdownEntry, 0, len(wallets))
		for _, w := range wallets {
			entries = append(entries, BreakdownEntry{
				Key:     w.ID,
				Label:   w.Name,
				Value:   sums[w.ID],
				Percent: percentShare(sums[w.ID], total),
			})
		}
		sortBreakdown(entries)
		return entries, nil
	default:
		return nil, NewError(ErrCodeInvalidInput, "invalid breakdown grouping: "+by)
	}
}

func percentShare(part, total Amount) float64 {
	if total.IsZero() {
		return 0
	}
	f, _ := part.Mul(NewAmountFromInt(100).Decimal).Div(total.Decimal).Float64()
	return f
}

func sortBreakdown(entries []BreakdownEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value.GreaterThan(entries[j].Value.Decimal)
	})
}
