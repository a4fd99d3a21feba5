package trendyol

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"trendsync/internal/models"
)

// Normalize maps one raw catalog entry plus its category context to the
// canonical product record. It is a pure function: every numeric field
// defaults to zero and Attributes starts as an empty list so no output field
// is ever absent.
func Normalize(raw RawProduct, cat models.Category) models.Product {
	original, selling := prices(raw.Price)

	ratio := computeDiscountRatio(original, selling)
	if raw.Price.DiscountRatio != nil {
		ratio = *raw.Price.DiscountRatio
	}

	images := make([]string, 0, len(raw.Images))
	for _, img := range raw.Images {
		if img.URL == "" {
			continue
		}
		images = append(images, absURL(img.URL, cdnBase))
	}

	variants := make([]models.Variant, 0, len(raw.Variants))
	for _, v := range raw.Variants {
		vOriginal, vSelling := prices(v.Price)
		vRatio := computeDiscountRatio(vOriginal, vSelling)
		if v.Price.DiscountRatio != nil {
			vRatio = *v.Price.DiscountRatio
		}
		labels := v.PriceLabels
		if labels == nil {
			labels = []string{}
		}
		variants = append(variants, models.Variant{
			ListingID:           v.ListingID,
			AttributeName:       v.AttributeName,
			AttributeValue:      v.AttributeValue,
			OriginalPrice:       vOriginal,
			DiscountedPrice:     vSelling,
			DiscountRatio:       vRatio,
			LowestPriceDuration: v.LowestPriceDuration,
			SameDayShipping:     v.SameDayShipping,
			HasCoupon:           v.HasCollectableCoupon,
			PriceLabels:         labels,
		})
	}

	return models.Product{
		ID:              raw.ID,
		PrimaryCategory: cat.Primary,
		SubCategory:     cat.Sub,
		Category:        cat.Name,
		Name:            raw.Name,
		Slug:            Slugify(raw.Name, raw.ID),
		Brand:           raw.Brand.Name,
		URL:             absURL(raw.URL, siteBase),
		Images:          images,
		OriginalPrice:   original,
		DiscountedPrice: selling,
		DiscountRatio:   ratio,
		FavoriteCount:   int(raw.SocialProof.FavoriteCount.Count),
		BasketCount:     int(raw.SocialProof.BasketCount.Count),
		AverageRating:   raw.RatingScore.AverageRating,
		RatingCount:     int(raw.RatingScore.TotalCount),
		Variants:        variants,
		Shipping: models.ShippingInfo{
			FreeCargo:            raw.FreeCargo,
			RushDeliveryDuration: raw.RushDeliveryDuration,
		},
		PromotionBadge: raw.PromotionBadge,
		Attributes:     []models.Attribute{},
	}
}

// prices resolves the original/selling price pair. The original price falls
// back to the selling price when absent.
func prices(p rawPrice) (original, selling float64) {
	if p.SellingPrice != nil {
		selling = *p.SellingPrice
	} else if p.DiscountedPrice != nil {
		selling = *p.DiscountedPrice
	}
	if p.OriginalPrice != nil {
		original = *p.OriginalPrice
	} else {
		original = selling
	}
	return original, selling
}

// computeDiscountRatio derives the discount percentage on a 0-100 scale,
// rounded to two decimals. A zero original price yields 0.
func computeDiscountRatio(original, selling float64) float64 {
	if original == 0 {
		return 0
	}
	return math.Round(((original-selling)/original)*100*100) / 100
}

func absURL(u, base string) string {
	if strings.HasPrefix(u, "http") {
		return u
	}
	return base + u
}

// Slugify derives the product slug from the name and the numeric id: the id
// keeps slugs unique even when names collide. The result is lower-case ASCII
// with diacritics stripped and non-alphanumeric runs collapsed to one hyphen.
func Slugify(name string, id int64) string {
	s := strings.ToLower(fmt.Sprintf("%s-%d", name, id))

	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if out, _, err := transform.String(stripper, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
