package stablefi

// Languages supported by the UI.
var Languages = []string{"zh", "en"}

// WalletKinds enumerates how a wallet was added.
var WalletKinds = []string{"decentralized", "exchange", "manual"}

// Wallet represents a connected or manually declared wallet.
type Wallet struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Kind      string   `json:"kind"`
	Chains    []string `json:"chains,omitempty"`
	Platform  *string  `json:"platform,omitempty"`
	CreatedAt *string  `json:"created_at"`
}

// Holding represents a single token position inside a wallet.
type Holding struct {
	ID            int64    `json:"id"`
	WalletID      string   `json:"wallet_id"`
	Token         string   `json:"token"`
	Chain         string   `json:"chain"`
	Category      Category `json:"category"`
	Balance       float64  `json:"balance"`
	Price         Amount   `json:"price"`
	Value         Amount   `json:"value"`
	APY7d         float64  `json:"apy_7d"`
	Profit        Amount   `json:"profit"`
	PurchaseTime  *string  `json:"purchase_time,omitempty"`
	PurchasePrice *Amount  `json:"purchase_price,omitempty"`
}

// ConnectWalletRequest defines inputs to connect a wallet.
type ConnectWalletRequest struct {
	Name     string
	Address  string
	Kind     string
	Chains   []string
	Platform *string
}

// ManualAssetInput describes a manually entered position. Its value is
// recorded at historical cost (purchase price x quantity), not live mark.
type ManualAssetInput struct {
	Token         string
	Category      Category
	Quantity      float64
	PurchasePrice float64
	PurchaseTime  string
}

// DashboardSummary carries the headline dashboard figures.
type DashboardSummary struct {
	TotalValue       Amount  `json:"total_value"`
	TotalProfit      Amount  `json:"total_profit"`
	WeightedAPY      float64 `json:"weighted_apy"`
	HoldingCount     int     `json:"holding_count"`
	WalletCount      int     `json:"wallet_count"`
	EstMonthlyIncome Amount  `json:"est_monthly_income"`
}

// BreakdownEntry is one slice of a category or wallet breakdown.
type BreakdownEntry struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	LabelZh string  `json:"label_zh,omitempty"`
	Color   string  `json:"color,omitempty"`
	Value   Amount  `json:"value"`
	Percent float64 `json:"percent"`
}

// SeriesPoint is one day of a generated value series.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ChartSeries pairs an entity key with its generated series.
type ChartSeries struct {
	Key    string
	Points []SeriesPoint
}

// ChartPoint is one per-day chart record: the shared "date" label plus one
// numeric field per entity key.
type ChartPoint map[string]any

// TrendEntity describes one line/area of a trend chart.
type TrendEntity struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	LabelZh      string  `json:"label_zh,omitempty"`
	Color        string  `json:"color,omitempty"`
	CurrentValue float64 `json:"current_value"`
}

// TrendResult is the assembled chart payload for one trend query.
type TrendResult struct {
	View     TrendView     `json:"view"`
	Days     int           `json:"days"`
	Entities []TrendEntity `json:"entities"`
	Points   []ChartPoint  `json:"points"`
}

// InstitutionProfile holds the onboarding questionnaire answers.
type InstitutionProfile struct {
	CompanyName        string  `json:"company_name"`
	ExpectedInvestment string  `json:"expected_investment"`
	ExpectedYield      string  `json:"expected_yield"`
	InvestmentPeriod   string  `json:"investment_period"`
	HasOwnWallet       bool    `json:"has_own_wallet"`
	WalletPlatform     *string `json:"wallet_platform,omitempty"`
	UpdatedAt          *string `json:"updated_at,omitempty"`
}

// BilingualText carries a Chinese and an English rendering of one string.
type BilingualText struct {
	Zh string `json:"zh"`
	En string `json:"en"`
}

// StablecoinProduct is one catalog entry.
type StablecoinProduct struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TokenName        string          `json:"token_name"`
	Platforms        []string        `json:"platforms"`
	Chains           []string        `json:"chains"`
	APY7d            float64         `json:"apy_7d"`
	ManagementFee    float64         `json:"management_fee"`
	SubscriptionFee  float64         `json:"subscription_fee"`
	RedemptionFee    float64         `json:"redemption_fee"`
	RevenueShare     float64         `json:"revenue_share"`
	TotalMarketCap   string          `json:"total_market_cap,omitempty"`
	TokenValue       string          `json:"token_value,omitempty"`
	Holders          int             `json:"holders,omitempty"`
	RegionLimits     []BilingualText `json:"region_limits,omitempty"`
	CompanyCriteria  []BilingualText `json:"company_criteria,omitempty"`
	SupportsFiat     bool            `json:"supports_fiat"`
	SupportsStable   bool            `json:"supports_stablecoin"`
	MinSubscription  BilingualText   `json:"min_subscription"`
	SubscriptionTime BilingualText   `json:"subscription_time"`
	MinRedemption    BilingualText   `json:"min_redemption"`
	RedemptionTime   BilingualText   `json:"redemption_time"`
	PlatformName     string          `json:"platform_name,omitempty"`
	PlatformRegion   BilingualText   `json:"platform_region"`
	PlatformWebsite  string          `json:"platform_website,omitempty"`
	IsFavorite       bool            `json:"is_favorite"`
}

// ChecklistDocument is one required account-opening document.
type ChecklistDocument struct {
	ID   string        `json:"id"`
	Name BilingualText `json:"name"`
	Desc BilingualText `json:"desc"`
}

// OpeningStep is one stage of the account-opening flow.
type OpeningStep struct {
	ID    int           `json:"id"`
	Key   string        `json:"key"`
	Title BilingualText `json:"title"`
}

// Application is a persisted account-opening application.
type Application struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"product_id"`
	CompanyName string   `json:"company_name"`
	CurrentStep int      `json:"current_step"`
	Status      string   `json:"status"`
	CheckedDocs []string `json:"checked_docs"`
	ContactURL  string   `json:"contact_url,omitempty"`
	CreatedAt   *string  `json:"created_at,omitempty"`
	UpdatedAt   *string  `json:"updated_at,omitempty"`
}

// ActivityLog is an audit record of a user-triggered action.
type ActivityLog struct {
	ID        int64   `json:"id"`
	Action    string  `json:"action"`
	WalletID  *string `json:"wallet_id,omitempty"`
	ProductID *string `json:"product_id,omitempty"`
	Details   *string `json:"details,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// AssistantMessage is one chat turn.
type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantSettings configures the optional live-model assistant path.
// When Provider is "canned" (the default) replies come from the built-in
// reply table and no network is touched.
type AssistantSettings struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url,omitempty"`
	Model    string `json:"model,omitempty"`
}
