package stablefi

import (
	"math"
	"testing"
)

func TestTotalValueAndProfit(t *testing.T) {
	holdings := []Holding{
		{Value: NewAmount(100.50), Profit: NewAmount(10)},
		{Value: NewAmount(200.25), Profit: NewAmount(-5.25)},
		{Value: NewAmount(0), Profit: NewAmount(0)},
	}
	if got := TotalValue(holdings).Float(); got != 300.75 {
		t.Fatalf("expected total 300.75, got %v", got)
	}
	if got := TotalProfit(holdings).Float(); got != 4.75 {
		t.Fatalf("expected profit 4.75, got %v", got)
	}
	if !TotalValue(nil).IsZero() {
		t.Fatalf("expected zero total for empty set")
	}
}

func TestWeightedAPY(t *testing.T) {
	// 100 @ 2% and 300 @ 4% -> (100*2 + 300*4) / 400 = 3.5
	holdings := []Holding{
		{Value: NewAmount(100), APY7d: 2},
		{Value: NewAmount(300), APY7d: 4},
	}
	if got := WeightedAPY(holdings); got != 3.5 {
		t.Fatalf("expected weighted apy 3.5, got %v", got)
	}
}

func TestWeightedAPYZeroTotal(t *testing.T) {
	holdings := []Holding{
		{Value: NewAmount(0), APY7d: 5},
	}
	if got := WeightedAPY(holdings); got != 0 {
		t.Fatalf("expected 0 for zero total, got %v", got)
	}
	if got := WeightedAPY(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
}

func TestCategoryBreakdownOmitsZeroCategories(t *testing.T) {
	holdings := []Holding{
		{Category: CategoryCrypto, Value: NewAmount(150)},
		{Category: CategoryCrypto, Value: NewAmount(50)},
		{Category: CategoryStablecoin, Value: NewAmount(0)},
	}
	sums := CategoryBreakdown(holdings)
	if len(sums) != 1 {
		t.Fatalf("expected one category, got %d", len(sums))
	}
	if got := sums[CategoryCrypto].Float(); got != 200 {
		t.Fatalf("expected crypto sum 200, got %v", got)
	}
	if _, ok := sums[CategoryStablecoin]; ok {
		t.Fatalf("expected zero-value category to be omitted")
	}
}

func TestWalletBreakdownIncludesEmptyWallets(t *testing.T) {
	wallets := []Wallet{{ID: "a"}, {ID: "b"}}
	holdings := []Holding{
		{WalletID: "a", Value: NewAmount(75)},
		{WalletID: "a", Value: NewAmount(25)},
	}
	sums := WalletBreakdown(wallets, holdings)
	if got := sums["a"].Float(); got != 100 {
		t.Fatalf("expected wallet a sum 100, got %v", got)
	}
	if sum, ok := sums["b"]; !ok || !sum.IsZero() {
		t.Fatalf("expected empty wallet b with zero sum")
	}
}

func TestGetDashboardSummary(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	wallet := testWallet(t, core, "main")

	summary, err := core.GetDashboardSummary("")
	if err != nil {
		t.Fatalf("GetDashboardSummary: %v", err)
	}
	if summary.WalletCount != 1 {
		t.Fatalf("expected one wallet, got %d", summary.WalletCount)
	}
	if summary.HoldingCount != len(demoHoldings) {
		t.Fatalf("expected %d holdings, got %d", len(demoHoldings), summary.HoldingCount)
	}

	holdings, err := core.GetHoldings(wallet.ID)
	if err != nil {
		t.Fatalf("GetHoldings: %v", err)
	}
	wantTotal := TotalValue(holdings).Float()
	if got := summary.TotalValue.Float(); got != wantTotal {
		t.Fatalf("expected total %v, got %v", wantTotal, got)
	}
	wantProfit := TotalProfit(holdings).Float()
	if got := summary.TotalProfit.Float(); got != wantProfit {
		t.Fatalf("expected profit %v, got %v", wantProfit, got)
	}

	// est monthly income = total * apy / 1200
	wantMonthly := wantTotal * summary.WeightedAPY / 1200
	if got := summary.EstMonthlyIncome.Float(); math.Abs(got-wantMonthly) > 0.01 {
		t.Fatalf("expected est monthly income ~%v, got %v", wantMonthly, got)
	}
}

func TestGetDashboardSummaryEmpty(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	summary, err := core.GetDashboardSummary("")
	if err != nil {
		t.Fatalf("GetDashboardSummary: %v", err)
	}
	if !summary.TotalValue.IsZero() || summary.WeightedAPY != 0 || !summary.EstMonthlyIncome.IsZero() {
		t.Fatalf("expected all-zero summary, got %+v", summary)
	}
}

func TestGetBreakdownByCategory(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testWallet(t, core, "main")

	entries, err := core.GetBreakdown("category", "")
	if err != nil {
		t.Fatalf("GetBreakdown: %v", err)
	}
	// Demo holdings cover all four categories.
	if len(entries) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(entries))
	}

	var total, percent float64
	for i, e := range entries {
		total += e.Value.Float()
		percent += e.Percent
		if i > 0 && entries[i-1].Value.LessThan(e.Value.Decimal) {
			t.Fatalf("expected descending value order")
		}
		if e.Color == "" || e.LabelZh == "" {
			t.Fatalf("expected color and zh label on %q", e.Key)
		}
	}

	summary, err := core.GetDashboardSummary("")
	if err != nil {
		t.Fatalf("GetDashboardSummary: %v", err)
	}
	if math.Abs(total-summary.TotalValue.Float()) > 0.001 {
		t.Fatalf("breakdown sum %v does not match total %v", total, summary.TotalValue.Float())
	}
	if math.Abs(percent-100) > 0.001 {
		t.Fatalf("expected percents to sum to 100, got %v", percent)
	}
}

func TestGetBreakdownByWallet(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	first := testWallet(t, core, "first")
	second := testWallet(t, core, "second")

	entries, err := core.GetBreakdown("wallet", "")
	if err != nil {
		t.Fatalf("GetBreakdown: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.Key] = true
		// Two identical demo wallets split evenly.
		if math.Abs(e.Percent-50) > 0.001 {
			t.Fatalf("expected 50%% share, got %v", e.Percent)
		}
	}
	if !seen[first.ID] || !seen[second.ID] {
		t.Fatalf("expected both wallet entries")
	}
}

func TestGetBreakdownInvalidGrouping(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := core.GetBreakdown("token", ""); !IsErrorCode(err, ErrCodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestGetBreakdownScopedToWallet(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	wallet := testWallet(t, core, "main")
	if _, err := core.AddManualWallet("cold", "0xcold", ManualAssetInput{
		Token: "PAXG", Category: CategoryGold, Quantity: 2, PurchasePrice: 2500,
	}); err != nil {
		t.Fatalf("AddManualWallet: %v", err)
	}

	entries, err := core.GetBreakdown("category", wallet.ID)
	if err != nil {
		t.Fatalf("GetBreakdown scoped: %v", err)
	}
	var total float64
	for _, e := range entries {
		total += e.Value.Float()
	}
	holdings, err := core.GetHoldings(wallet.ID)
	if err != nil {
		t.Fatalf("GetHoldings: %v", err)
	}
	if math.Abs(total-TotalValue(holdings).Float()) > 0.001 {
		t.Fatalf("scoped breakdown should only cover the selected wallet")
	}
}
