package stablefi

import "testing"

func TestGetProductsOrdering(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	products, err := core.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != len(productCatalog) {
		t.Fatalf("expected %d products, got %d", len(productCatalog), len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].APY7d < products[i].APY7d {
			t.Fatalf("expected descending apy, got %v before %v", products[i-1].APY7d, products[i].APY7d)
		}
	}
}

func TestGetProductsFavoritesFirst(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	// paxg has the lowest APY; favoriting it must pull it to the front.
	if _, err := core.ToggleFavorite("paxg"); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	products, err := core.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if products[0].ID != "paxg" || !products[0].IsFavorite {
		t.Fatalf("expected favorited paxg first, got %q", products[0].ID)
	}
	for _, p := range products[1:] {
		if p.IsFavorite {
			t.Fatalf("expected only paxg favorited")
		}
	}
}

func TestGetProduct(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	product, err := core.GetProduct("  USDY ")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.TokenName != "USDY" {
		t.Fatalf("expected USDY, got %q", product.TokenName)
	}
	if product.APY7d != 5.25 {
		t.Fatalf("expected apy 5.25, got %v", product.APY7d)
	}
	if len(product.RegionLimits) == 0 || product.RegionLimits[0].Zh == "" || product.RegionLimits[0].En == "" {
		t.Fatalf("expected bilingual region limits")
	}

	if _, err := core.GetProduct("unknown"); !IsErrorCode(err, ErrCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	on, err := core.ToggleFavorite("buidl")
	if err != nil {
		t.Fatalf("ToggleFavorite on: %v", err)
	}
	if !on {
		t.Fatalf("expected favorite set")
	}

	ids, err := core.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites: %v", err)
	}
	if len(ids) != 1 || ids[0] != "buidl" {
		t.Fatalf("expected [buidl], got %v", ids)
	}

	off, err := core.ToggleFavorite("buidl")
	if err != nil {
		t.Fatalf("ToggleFavorite off: %v", err)
	}
	if off {
		t.Fatalf("expected favorite cleared")
	}
	ids, err = core.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites after clear: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no favorites, got %v", ids)
	}
}

func TestToggleFavoriteUnknownProduct(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := core.ToggleFavorite("nope"); !IsErrorCode(err, ErrCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
