package trendyol

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"trendsync/internal/httputil"
	"trendsync/internal/models"
)

type detailResponse struct {
	Result struct {
		AttributeCategories []struct {
			CategoryName string `json:"categoryName"`
			Attributes   []struct {
				AttributeName      string `json:"attributeName"`
				AttributeValueName string `json:"attributeValueName"`
			} `json:"attributes"`
		} `json:"attributeCategories"`
	} `json:"result"`
}

// FetchAttributes requests the detail record for one product id and flattens
// the nested category → attribute structure into {category, name, value}
// triples. An absent or empty structure yields an empty, non-nil slice.
func (c *Client) FetchAttributes(ctx context.Context, id int64) ([]models.Attribute, error) {
	url := fmt.Sprintf("%s%s?productId=%d&culture=tr-TR", c.baseURL, detailPath, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product %d detail: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product %d detail: unexpected status %s", id, resp.Status)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("product %d detail: read body: %w", id, err)
	}

	var dr detailResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("product %d detail: unmarshal response: %w", id, err)
	}

	attrs := []models.Attribute{}
	for _, ac := range dr.Result.AttributeCategories {
		for _, a := range ac.Attributes {
			attrs = append(attrs, models.Attribute{
				Category: ac.CategoryName,
				Name:     a.AttributeName,
				Value:    a.AttributeValueName,
			})
		}
	}
	return attrs, nil
}
