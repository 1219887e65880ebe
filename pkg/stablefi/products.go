package stablefi

import (
	"sort"
	"strings"
)

// productCatalog is the static read-only product list. The aggregation core
// never reads it; it feeds the catalog and detail views only.
var productCatalog = []StablecoinProduct{
	{
		ID: "usdy", Name: "Ondo US Dollar Yield", TokenName: "USDY",
		Platforms: []string{"Ondo Finance"}, Chains: []string{"Ethereum", "Solana"},
		APY7d: 5.25, ManagementFee: 0.5, SubscriptionFee: 0, RedemptionFee: 0, RevenueShare: 0,
		TotalMarketCap: "$450M", TokenValue: "$1.0434", Holders: 1250,
		RegionLimits: []BilingualText{
			{Zh: "不向美国个人投资者开放", En: "Not available to US retail investors"},
			{Zh: "受限司法管辖区名单适用", En: "Restricted jurisdiction list applies"},
		},
		CompanyCriteria: []BilingualText{
			{Zh: "合格机构投资者", En: "Qualified institutional investor"},
			{Zh: "完成 KYB 审核", En: "Completed KYB review"},
		},
		SupportsFiat: true, SupportsStable: true,
		MinSubscription:  BilingualText{Zh: "首次申购 $100,000", En: "Initial subscription $100,000"},
		SubscriptionTime: BilingualText{Zh: "T+1 工作日", En: "T+1 business day"},
		MinRedemption:    BilingualText{Zh: "$5,000", En: "$5,000"},
		RedemptionTime:   BilingualText{Zh: "T+2 工作日", En: "T+2 business days"},
		PlatformName:     "Ondo Finance",
		PlatformRegion:   BilingualText{Zh: "美国", En: "United States"},
		PlatformWebsite:  "https://ondo.finance",
	},
	{
		ID: "buidl", Name: "BlackRock USD Institutional Digital Liquidity Fund", TokenName: "BUIDL",
		Platforms: []string{"Securitize"}, Chains: []string{"Ethereum"},
		APY7d: 4.89, ManagementFee: 0.5, SubscriptionFee: 0, RedemptionFee: 0, RevenueShare: 0,
		TotalMarketCap: "$2.9B", TokenValue: "$1.00", Holders: 85,
		RegionLimits: []BilingualText{
			{Zh: "仅限合格购买者 (Qualified Purchaser)", En: "Qualified purchasers only"},
		},
		CompanyCriteria: []BilingualText{
			{Zh: "最低投资 $5,000,000", En: "Minimum investment $5,000,000"},
			{Zh: "通过 Securitize 完成白名单", En: "Allowlisted via Securitize"},
		},
		SupportsFiat: true, SupportsStable: true,
		MinSubscription:  BilingualText{Zh: "$5,000,000", En: "$5,000,000"},
		SubscriptionTime: BilingualText{Zh: "T+0 (美东工作时间)", En: "T+0 (US business hours)"},
		MinRedemption:    BilingualText{Zh: "不设下限", En: "No minimum"},
		RedemptionTime:   BilingualText{Zh: "T+0 USDC 即时赎回", En: "T+0 instant USDC redemption"},
		PlatformName:     "Securitize",
		PlatformRegion:   BilingualText{Zh: "美国", En: "United States"},
		PlatformWebsite:  "https://securitize.io",
	},
	{
		ID: "sdai", Name: "Savings DAI", TokenName: "sDAI",
		Platforms: []string{"Spark Protocol"}, Chains: []string{"Ethereum", "Gnosis"},
		APY7d: 6.12, ManagementFee: 0, SubscriptionFee: 0, RedemptionFee: 0, RevenueShare: 0,
		TotalMarketCap: "$1.1B", TokenValue: "$1.0652", Holders: 12400,
		RegionLimits: []BilingualText{
			{Zh: "无地域限制 (去中心化协议)", En: "No region restriction (permissionless protocol)"},
		},
		CompanyCriteria: []BilingualText{
			{Zh: "自托管钱包", En: "Self-custodied wallet"},
		},
		SupportsFiat: false, SupportsStable: true,
		MinSubscription:  BilingualText{Zh: "不设下限", En: "No minimum"},
		SubscriptionTime: BilingualText{Zh: "即时", En: "Instant"},
		MinRedemption:    BilingualText{Zh: "不设下限", En: "No minimum"},
		RedemptionTime:   BilingualText{Zh: "即时", En: "Instant"},
		PlatformName:     "Spark Protocol",
		PlatformRegion:   BilingualText{Zh: "去中心化", En: "Decentralized"},
		PlatformWebsite:  "https://spark.fi",
	},
	{
		ID: "usde", Name: "Ethena USDe", TokenName: "USDe",
		Platforms: []string{"Ethena"}, Chains: []string{"Ethereum"},
		APY7d: 12.45, ManagementFee: 0, SubscriptionFee: 0, RedemptionFee: 0.1, RevenueShare: 10,
		TotalMarketCap: "$3.2B", TokenValue: "$1.00", Holders: 31000,
		RegionLimits: []BilingualText{
			{Zh: "不向美国及受制裁地区开放", En: "Not available in the US or sanctioned regions"},
		},
		CompanyCriteria: []BilingualText{
			{Zh: "完成机构 KYC", En: "Institutional KYC completed"},
		},
		SupportsFiat: false, SupportsStable: true,
		MinSubscription:  BilingualText{Zh: "$10,000", En: "$10,000"},
		SubscriptionTime: BilingualText{Zh: "即时", En: "Instant"},
		MinRedemption:    BilingualText{Zh: "$10,000", En: "$10,000"},
		RedemptionTime:   BilingualText{Zh: "T+7 冷却期", En: "T+7 cooldown"},
		PlatformName:     "Ethena",
		PlatformRegion:   BilingualText{Zh: "英属维尔京群岛", En: "British Virgin Islands"},
		PlatformWebsite:  "https://ethena.fi",
	},
	{
		ID: "paxg", Name: "Pax Gold", TokenName: "PAXG",
		Platforms: []string{"Paxos"}, Chains: []string{"Ethereum"},
		APY7d: 0, ManagementFee: 0, SubscriptionFee: 0.15, RedemptionFee: 0.15, RevenueShare: 0,
		TotalMarketCap: "$540M", TokenValue: "$2,596.16", Holders: 62000,
		RegionLimits: []BilingualText{
			{Zh: "受限司法管辖区名单适用", En: "Restricted jurisdiction list applies"},
		},
		CompanyCriteria: []BilingualText{
			{Zh: "Paxos 机构账户", En: "Paxos institutional account"},
		},
		SupportsFiat: true, SupportsStable: true,
		MinSubscription:  BilingualText{Zh: "0.01 盎司", En: "0.01 oz"},
		SubscriptionTime: BilingualText{Zh: "即时", En: "Instant"},
		MinRedemption:    BilingualText{Zh: "430 盎司 (实物金条)", En: "430 oz (physical bar)"},
		RedemptionTime:   BilingualText{Zh: "T+2 工作日", En: "T+2 business days"},
		PlatformName:     "Paxos",
		PlatformRegion:   BilingualText{Zh: "美国", En: "United States"},
		PlatformWebsite:  "https://paxos.com",
	},
}

// GetProducts returns the catalog with favorite flags applied, favorites
// first, then by descending 7d APY.
func (c *Core) GetProducts() ([]StablecoinProduct, error) {
	favorites, err := c.favoriteSet()
	if err != nil {
		return nil, err
	}
	products := make([]StablecoinProduct, len(productCatalog))
	copy(products, productCatalog)
	for i := range products {
		products[i].IsFavorite = favorites[products[i].ID]
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].IsFavorite != products[j].IsFavorite {
			return products[i].IsFavorite
		}
		return products[i].APY7d > products[j].APY7d
	})
	return products, nil
}

// GetProduct returns one catalog entry by ID.
func (c *Core) GetProduct(productID string) (*StablecoinProduct, error) {
	productID = strings.ToLower(strings.TrimSpace(productID))
	for _, p := range productCatalog {
		if p.ID == productID {
			favorites, err := c.favoriteSet()
			if err != nil {
				return nil, err
			}
			p.IsFavorite = favorites[p.ID]
			return &p, nil
		}
	}
	return nil, NewError(ErrCodeNotFound, "product not found: "+productID)
}

// ToggleFavorite flips the favorite flag for a product and returns the new
// state.
func (c *Core) ToggleFavorite(productID string) (bool, error) {
	if _, err := c.GetProduct(productID); err != nil {
		return false, err
	}
	productID = strings.ToLower(strings.TrimSpace(productID))

	result, err := c.db.Exec("DELETE FROM favorites WHERE product_id = ?", productID)
	if err != nil {
		return false, WrapError(ErrCodeDatabase, "toggle favorite", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, WrapError(ErrCodeDatabase, "toggle favorite", err)
	}
	if rows > 0 {
		c.logActivity(ActivityLog{Action: "favorite_removed", ProductID: &productID})
		return false, nil
	}
	if _, err := c.db.Exec("INSERT INTO favorites (product_id) VALUES (?)", productID); err != nil {
		return false, WrapError(ErrCodeDatabase, "toggle favorite", err)
	}
	c.logActivity(ActivityLog{Action: "favorite_added", ProductID: &productID})
	return true, nil
}

// GetFavorites returns the favorited product IDs in insertion order.
func (c *Core) GetFavorites() ([]string, error) {
	rows, err := c.db.Query("SELECT product_id FROM favorites ORDER BY created_at, product_id")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query favorites", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan favorite", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *Core) favoriteSet() (map[string]bool, error) {
	ids, err := c.GetFavorites()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
