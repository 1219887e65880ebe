package stablefi

// Category classifies a holding for display color and mock volatility.
type Category string

const (
	CategoryCrypto     Category = "crypto"
	CategoryMMF        Category = "tokenised_mmf"
	CategoryGold       Category = "tokenised_gold"
	CategoryStablecoin Category = "stablecoin"
)

// CategoryInfo maps a category to its display names, chart color, and the
// synthetic volatility coefficient used by the mock series generator.
type CategoryInfo struct {
	Category   Category `json:"category"`
	Name       string   `json:"name"`
	NameZh     string   `json:"name_zh"`
	Color      string   `json:"color"`
	Volatility float64  `json:"volatility"`
}

// categoryTable holds the static category lookup. Volatility decreases from
// crypto through stablecoin; stablecoins use a near-zero coefficient.
var categoryTable = map[Category]CategoryInfo{
	CategoryCrypto:     {Category: CategoryCrypto, Name: "Cryptocurrency", NameZh: "加密货币", Color: "#f59e0b", Volatility: 0.05},
	CategoryMMF:        {Category: CategoryMMF, Name: "Tokenised MMF", NameZh: "代币化货币基金", Color: "#3b82f6", Volatility: 0.005},
	CategoryGold:       {Category: CategoryGold, Name: "Tokenised Gold", NameZh: "代币化黄金", Color: "#eab308", Volatility: 0.02},
	CategoryStablecoin: {Category: CategoryStablecoin, Name: "Stablecoin", NameZh: "稳定币", Color: "#10b981", Volatility: 0.001},
}

// categoryOrder fixes a stable presentation order for breakdowns and legends.
var categoryOrder = []Category{CategoryCrypto, CategoryMMF, CategoryGold, CategoryStablecoin}

// Categories returns the static category table in presentation order.
func Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		infos = append(infos, categoryTable[cat])
	}
	return infos
}

// CategoryLookup returns the info for one category.
func CategoryLookup(cat Category) (CategoryInfo, bool) {
	info, ok := categoryTable[cat]
	return info, ok
}

// IsValidCategory reports whether cat is a known category.
func IsValidCategory(cat Category) bool {
	_, ok := categoryTable[cat]
	return ok
}

// CategoryVolatility returns the mock volatility coefficient for a category,
// falling back to the stablecoin coefficient for unknown values.
func CategoryVolatility(cat Category) float64 {
	if info, ok := categoryTable[cat]; ok {
		return info.Volatility
	}
	return categoryTable[CategoryStablecoin].Volatility
}
