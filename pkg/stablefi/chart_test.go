package stablefi

import (
	"testing"
)

func TestAssembleChart(t *testing.T) {
	series := []ChartSeries{
		{Key: "crypto", Points: []SeriesPoint{{Date: "08-29", Value: 1}, {Date: "08-30", Value: 2}, {Date: "08-31", Value: 3}}},
		{Key: "stablecoin", Points: []SeriesPoint{{Date: "08-29", Value: 10}, {Date: "08-30", Value: 10}, {Date: "08-31", Value: 10}}},
	}
	points := AssembleChart(series)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	first := points[0]
	if first["date"] != "08-29" {
		t.Fatalf("expected shared date label, got %v", first["date"])
	}
	if first["crypto"] != 1.0 || first["stablecoin"] != 10.0 {
		t.Fatalf("expected both series fields, got %v", first)
	}
}

func TestAssembleChartShortSeriesOmitsField(t *testing.T) {
	series := []ChartSeries{
		{Key: "long", Points: []SeriesPoint{{Date: "08-30", Value: 1}, {Date: "08-31", Value: 2}}},
		{Key: "short", Points: []SeriesPoint{{Date: "08-30", Value: 5}}},
	}
	points := AssembleChart(series)
	if len(points) != 2 {
		t.Fatalf("expected longest length, got %d", len(points))
	}
	if _, ok := points[0]["short"]; !ok {
		t.Fatalf("expected short series present on first day")
	}
	if _, ok := points[1]["short"]; ok {
		t.Fatalf("expected short series omitted past its end")
	}
	if points[1]["long"] != 2.0 {
		t.Fatalf("expected long series value, got %v", points[1]["long"])
	}
}

func TestAssembleChartEmpty(t *testing.T) {
	if points := AssembleChart(nil); len(points) != 0 {
		t.Fatalf("expected no points, got %d", len(points))
	}
}

func TestTrendQueryValidate(t *testing.T) {
	for _, days := range TrendHorizons {
		q := TrendQuery{View: TrendViewCategory, Days: days}
		if err := q.Validate(); err != nil {
			t.Fatalf("expected horizon %d valid: %v", days, err)
		}
	}
	if err := (TrendQuery{View: TrendViewTotal, Days: 45}).Validate(); !IsErrorCode(err, ErrCodeInvalidInput) {
		t.Fatalf("expected invalid horizon error, got %v", err)
	}
	if err := (TrendQuery{View: TrendView("weekly"), Days: 30}).Validate(); !IsErrorCode(err, ErrCodeInvalidInput) {
		t.Fatalf("expected invalid view error, got %v", err)
	}
}

func TestBuildTrendCategoryView(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testWallet(t, core, "main")

	result, err := core.BuildTrend(TrendQuery{View: TrendViewCategory, Days: 30})
	if err != nil {
		t.Fatalf("BuildTrend: %v", err)
	}
	if result.View != TrendViewCategory || result.Days != 30 {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if len(result.Entities) != 4 {
		t.Fatalf("expected 4 category entities, got %d", len(result.Entities))
	}
	if len(result.Points) != 31 {
		t.Fatalf("expected 31 points, got %d", len(result.Points))
	}

	last := result.Points[len(result.Points)-1]
	for _, e := range result.Entities {
		v, ok := last[e.Key].(float64)
		if !ok {
			t.Fatalf("expected field for %q on last point", e.Key)
		}
		if v != e.CurrentValue {
			t.Fatalf("expected last point of %q to equal current value %v, got %v", e.Key, e.CurrentValue, v)
		}
	}
}

func TestBuildTrendTotalView(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testWallet(t, core, "main")

	result, err := core.BuildTrend(TrendQuery{View: TrendViewTotal, Days: 90})
	if err != nil {
		t.Fatalf("BuildTrend: %v", err)
	}
	if len(result.Entities) != 1 || result.Entities[0].Key != "total" {
		t.Fatalf("expected single total entity, got %+v", result.Entities)
	}
	if len(result.Points) != 91 {
		t.Fatalf("expected 91 points, got %d", len(result.Points))
	}
}

func TestBuildTrendAssetView(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testWallet(t, core, "main")

	result, err := core.BuildTrend(TrendQuery{View: TrendViewAsset, Days: 30})
	if err != nil {
		t.Fatalf("BuildTrend: %v", err)
	}
	if len(result.Entities) != len(demoHoldings) {
		t.Fatalf("expected one entity per token, got %d", len(result.Entities))
	}
	for i := 1; i < len(result.Entities); i++ {
		if result.Entities[i-1].Key > result.Entities[i].Key {
			t.Fatalf("expected tokens sorted by name")
		}
	}
}

func TestBuildTrendDeterministic(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testWallet(t, core, "main")

	first, err := core.BuildTrend(TrendQuery{View: TrendViewCategory, Days: 30})
	if err != nil {
		t.Fatalf("BuildTrend: %v", err)
	}
	second, err := core.BuildTrend(TrendQuery{View: TrendViewCategory, Days: 30})
	if err != nil {
		t.Fatalf("BuildTrend again: %v", err)
	}
	for i := range first.Points {
		for _, e := range first.Entities {
			if first.Points[i][e.Key] != second.Points[i][e.Key] {
				t.Fatalf("expected identical walks across queries at %d for %q", i, e.Key)
			}
		}
	}
}

func TestBuildTrendEmptyHoldings(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	result, err := core.BuildTrend(TrendQuery{View: TrendViewTotal, Days: 30})
	if err != nil {
		t.Fatalf("BuildTrend: %v", err)
	}
	if len(result.Entities) != 0 || len(result.Points) != 0 {
		t.Fatalf("expected empty trend for no holdings, got %+v", result)
	}
}
