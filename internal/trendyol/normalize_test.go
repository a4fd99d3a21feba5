package trendyol

import (
	"reflect"
	"testing"

	"trendsync/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestComputeDiscountRatio(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		selling  float64
		want     float64
	}{
		{"quarter off", 200, 150, 25.0},
		{"zero original price", 0, 150, 0},
		{"no discount", 100, 100, 0},
		{"rounds to two decimals", 300, 100, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeDiscountRatio(tt.original, tt.selling); got != tt.want {
				t.Errorf("computeDiscountRatio(%v, %v) = %v, want %v",
					tt.original, tt.selling, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name    string
		product string
		id      int64
		want    string
	}{
		{"plain ascii", "Basic Tshirt", 42, "basic-tshirt-42"},
		{"turkish diacritics", "Gömlek Çizgili", 7, "gomlek-cizgili-7"},
		{"symbol runs collapse", "A++  //  B", 1, "a-b-1"},
		{"leading symbols trimmed", "!!Ürün", 9, "urun-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.product, tt.id)
			if got != tt.want {
				t.Errorf("Slugify(%q, %d) = %q, want %q", tt.product, tt.id, got, tt.want)
			}
			// Deterministic across calls.
			if again := Slugify(tt.product, tt.id); again != got {
				t.Errorf("Slugify not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cat := models.Category{Primary: "KADIN", Sub: "Giyim", Name: "Elbise", Path: "/elbise-x-c56"}

	raw := RawProduct{
		ID:   101,
		Name: "Yazlık Elbise",
		URL:  "/yazlik-elbise-p-101",
		Images: []rawImage{
			{URL: "/ty100/product/image1.jpg"},
			{URL: "https://img.example.com/image2.jpg"},
		},
		Price: rawPrice{OriginalPrice: f64(200), SellingPrice: f64(150)},
	}
	raw.Brand.Name = "Marka"

	p := Normalize(raw, cat)

	if p.ID != 101 || p.PrimaryCategory != "KADIN" || p.SubCategory != "Giyim" || p.Category != "Elbise" {
		t.Errorf("category context not carried: %+v", p)
	}
	if p.URL != "https://www.trendyol.com/yazlik-elbise-p-101" {
		t.Errorf("relative product URL not prefixed: %q", p.URL)
	}
	wantImages := []string{
		"https://cdn.dsmcdn.com/ty100/product/image1.jpg",
		"https://img.example.com/image2.jpg",
	}
	if !reflect.DeepEqual(p.Images, wantImages) {
		t.Errorf("images = %v, want %v", p.Images, wantImages)
	}
	if p.OriginalPrice != 200 || p.DiscountedPrice != 150 || p.DiscountRatio != 25.0 {
		t.Errorf("prices = %v/%v/%v, want 200/150/25", p.OriginalPrice, p.DiscountedPrice, p.DiscountRatio)
	}
	if p.Attributes == nil || len(p.Attributes) != 0 {
		t.Errorf("attributes should start as an empty list, got %v", p.Attributes)
	}
	if p.FavoriteCount != 0 || p.BasketCount != 0 || p.AverageRating != 0 || p.RatingCount != 0 {
		t.Errorf("absent counts should default to zero: %+v", p)
	}
}

func TestNormalizePriceFallbacks(t *testing.T) {
	cat := models.Category{Primary: "ERKEK", Sub: "Giyim", Name: "Pantolon"}

	// No original price: falls back to the selling price, ratio 0.
	raw := RawProduct{ID: 5, Name: "Pantolon", Price: rawPrice{SellingPrice: f64(99.9)}}
	p := Normalize(raw, cat)
	if p.OriginalPrice != 99.9 || p.DiscountedPrice != 99.9 || p.DiscountRatio != 0 {
		t.Errorf("fallback prices = %v/%v/%v, want 99.9/99.9/0", p.OriginalPrice, p.DiscountedPrice, p.DiscountRatio)
	}

	// Upstream-provided ratio wins over the computed one.
	raw = RawProduct{ID: 6, Name: "Pantolon", Price: rawPrice{
		OriginalPrice: f64(200), SellingPrice: f64(150), DiscountRatio: f64(30),
	}}
	if p := Normalize(raw, cat); p.DiscountRatio != 30 {
		t.Errorf("upstream ratio ignored: got %v, want 30", p.DiscountRatio)
	}
}

func TestGenderID(t *testing.T) {
	if g := genderID(models.Category{Primary: "ERKEK GIYIM"}); g != genderMen {
		t.Errorf("ERKEK label: genderID = %d, want %d", g, genderMen)
	}
	if g := genderID(models.Category{Primary: "KADIN GIYIM"}); g != genderWomen {
		t.Errorf("KADIN label: genderID = %d, want %d", g, genderWomen)
	}
}
