package trendyol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"trendsync/internal/httputil"
	"trendsync/internal/models"
)

// PageResult classifies the outcome of one page fetch.
// Exactly one of the three states holds:
//   - len(Products) > 0: the page had items, pagination continues
//   - Terminal: empty page or upstream not-found, the category is exhausted
//   - Err != nil: any other failure, fatal for this category's crawl
type PageResult struct {
	Products []RawProduct
	Terminal bool
	Err      error
}

// flexInt decodes counts that the upstream serves either as numbers or as
// numeric strings. Anything unparsable decodes to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(v)
	return nil
}

// rawImage accepts both the bare-string and the {"url": ...} image forms.
type rawImage struct {
	URL string
}

func (im *rawImage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		im.URL = s
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		im.URL = obj.URL
	}
	return nil
}

type rawPrice struct {
	OriginalPrice   *float64 `json:"originalPrice"`
	SellingPrice    *float64 `json:"sellingPrice"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	DiscountRatio   *float64 `json:"discountRatio"`
}

type rawVariant struct {
	ListingID            string   `json:"listingId"`
	AttributeName        string   `json:"attributeName"`
	AttributeValue       string   `json:"attributeValue"`
	Price                rawPrice `json:"price"`
	LowestPriceDuration  *int     `json:"lowestPriceDuration"`
	SameDayShipping      bool     `json:"sameDayShipping"`
	HasCollectableCoupon bool     `json:"hasCollectableCoupon"`
	PriceLabels          []string `json:"priceLabels"`
}

// RawProduct is one catalog entry as served by the search endpoint. Only the
// fields the normalizer extracts are declared; the rest of the payload is
// ignored.
type RawProduct struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	URL    string     `json:"url"`
	Brand  struct {
		Name string `json:"name"`
	} `json:"brand"`
	Images      []rawImage `json:"images"`
	Price       rawPrice   `json:"price"`
	SocialProof struct {
		FavoriteCount struct {
			Count flexInt `json:"count"`
		} `json:"favoriteCount"`
		BasketCount struct {
			Count flexInt `json:"count"`
		} `json:"basketCount"`
	} `json:"socialProof"`
	RatingScore struct {
		AverageRating float64 `json:"averageRating"`
		TotalCount    flexInt `json:"totalCount"`
	} `json:"ratingScore"`
	Variants             []rawVariant `json:"variants"`
	PromotionBadge       string       `json:"promotionBadge"`
	FreeCargo            bool         `json:"freeCargo"`
	RushDeliveryDuration *int         `json:"rushDeliveryDuration"`
}

type searchResponse struct {
	Result struct {
		Products []RawProduct `json:"products"`
	} `json:"result"`
}

// FetchPage requests one catalog page for the category. It never retries; the
// caller decides what each outcome means for the crawl.
func (c *Client) FetchPage(ctx context.Context, cat models.Category, page int) PageResult {
	url := fmt.Sprintf("%s%s%s?pi=%d&culture=tr-TR&userGenderId=%d",
		c.baseURL, searchPath, cat.Path, page, genderID(cat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PageResult{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return PageResult{Err: fmt.Errorf("page %d: %w", page, err)}
	}
	defer resp.Body.Close()

	// Upstream answers 404 for pages past the end of a category. That is a
	// normal end-of-category signal, same as an empty page.
	if resp.StatusCode == http.StatusNotFound {
		return PageResult{Terminal: true}
	}
	if resp.StatusCode != http.StatusOK {
		return PageResult{Err: fmt.Errorf("page %d: unexpected status %s", page, resp.Status)}
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return PageResult{Err: fmt.Errorf("page %d: read body: %w", page, err)}
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return PageResult{Err: fmt.Errorf("page %d: unmarshal response: %w", page, err)}
	}

	if len(sr.Result.Products) == 0 {
		return PageResult{Terminal: true}
	}
	return PageResult{Products: sr.Result.Products}
}
