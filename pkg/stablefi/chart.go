package stablefi

import (
	"sort"
	"strconv"
)

// TrendView selects which aggregation the trend chart renders.
type TrendView string

const (
	TrendViewTotal    TrendView = "total"
	TrendViewCategory TrendView = "category"
	TrendViewAsset    TrendView = "asset"
)

// TrendHorizons lists the accepted chart horizons, in days.
var TrendHorizons = []int{30, 60, 90, 180, 365}

// TrendQuery carries the view selection for one trend computation. It is
// pure selection state; every query recomputes from the current holdings.
type TrendQuery struct {
	View     TrendView
	Days     int
	WalletID string
}

// Validate checks the view mode and horizon.
func (q TrendQuery) Validate() error {
	switch q.View {
	case TrendViewTotal, TrendViewCategory, TrendViewAsset:
	default:
		return NewError(ErrCodeInvalidInput, "invalid trend view: "+string(q.View))
	}
	for _, d := range TrendHorizons {
		if q.Days == d {
			return nil
		}
	}
	return NewError(ErrCodeInvalidInput, "invalid trend horizon: "+strconv.Itoa(q.Days))
}

// AssembleChart aligns independently generated series into per-day records.
// Each record carries the shared date label for its index plus one field per
// entity key. A series shorter than the longest simply omits its field for
// the missing days instead of erroring.
func AssembleChart(series []ChartSeries) []ChartPoint {
	length := 0
	for _, s := range series {
		if len(s.Points) > length {
			length = len(s.Points)
		}
	}

	points := make([]ChartPoint, 0, length)
	for i := 0; i < length; i++ {
		record := ChartPoint{"date": ""}
		for _, s := range series {
			if i >= len(s.Points) {
				continue
			}
			if record["date"] == "" {
				record["date"] = s.Points[i].Date
			}
			record[s.Key] = s.Points[i].Value
		}
		points = append(points, record)
	}
	return points
}

// BuildTrend runs the full aggregation pipeline for one trend query:
// holdings -> aggregate -> per-entity mock series -> assembled chart.
func (c *Core) BuildTrend(q TrendQuery) (TrendResult, error) {
	if err := q.Validate(); err != nil {
		return TrendResult{}, err
	}
	holdings, err := c.GetHoldings(q.WalletID)
	if err != nil {
		return TrendResult{}, err
	}

	entities := trendEntities(q.View, holdings)
	series := make([]ChartSeries, 0, len(entities))
	for _, e := range entities {
		vol := entityVolatility(q.View, e.Key, holdings)
		series = append(series, ChartSeries{
			Key:    e.Key,
			Points: GenerateSeries(e.CurrentValue, vol, q.Days, SeedForEntity(e.Key)),
		})
	}

	return TrendResult{
		View:     q.View,
		Days:     q.Days,
		Entities: entities,
		Points:   AssembleChart(series),
	}, nil
}

func trendEntities(view TrendView, holdings []Holding) []TrendEntity {
	switch view {
	case TrendViewTotal:
		total := TotalValue(holdings)
		if total.IsZero() {
			return nil
		}
		return []TrendEntity{{Key: "total", Label: "Total Value", LabelZh: "总资产", CurrentValue: total.Float()}}
	case TrendViewCategory:
		sums := CategoryBreakdown(holdings)
		entities := make([]TrendEntity, 0, len(sums))
		for _, cat := range categoryOrder {
			sum, ok := sums[cat]
			if !ok {
				continue
			}
			info := categoryTable[cat]
			entities = append(entities, TrendEntity{
				Key:          string(cat),
				Label:        info.Name,
				LabelZh:      info.NameZh,
				Color:        info.Color,
				CurrentValue: sum.Float(),
			})
		}
		return entities
	case TrendViewAsset:
		sums := map[string]Amount{}
		colors := map[string]string{}
		var order []string
		for _, h := range holdings {
			if _, seen := sums[h.Token]; !seen {
				order = append(order, h.Token)
				if info, ok := CategoryLookup(h.Category); ok {
					colors[h.Token] = info.Color
				}
			}
			sums[h.Token] = sums[h.Token].Plus(h.Value)
		}
		sort.Strings(order)
		entities := make([]TrendEntity, 0, len(order))
		for _, token := range order {
			if sums[token].IsZero() {
				continue
			}
			entities = append(entities, TrendEntity{
				Key:          token,
				Label:        token,
				Color:        colors[token],
				CurrentValue: sums[token].Float(),
			})
		}
		return entities
	}
	return nil
}

// entityVolatility picks the walk coefficient for one trend entity. The
// total view blends category volatilities by value share.
func entityVolatility(view TrendView, key string, holdings []Holding) float64 {
	switch view {
	case TrendViewCategory:
		return CategoryVolatility(Category(key))
	case TrendViewAsset:
		for _, h := range holdings {
			if h.Token == key {
				return CategoryVolatility(h.Category)
			}
		}
		return CategoryVolatility(CategoryStablecoin)
	default:
		total := TotalValue(holdings)
		if total.IsZero() {
			return CategoryVolatility(CategoryStablecoin)
		}
		blended := 0.0
		for cat, sum := range CategoryBreakdown(holdings) {
			share, _ := sum.Div(total.Decimal).Float64()
			blended += CategoryVolatility(cat) * share
		}
		return blended
	}
}
