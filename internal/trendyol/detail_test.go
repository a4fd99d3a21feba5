package trendyol

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"trendsync/internal/models"
)

func TestFetchAttributesFlattensCategories(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("productId"); got != "42" {
			t.Errorf("productId = %s, want 42", got)
		}
		fmt.Fprint(w, `{"result":{"attributeCategories":[
			{"categoryName":"Fabric","attributes":[
				{"attributeName":"Material","attributeValueName":"Cotton"},
				{"attributeName":"Pattern","attributeValueName":"Striped"}]},
			{"categoryName":"Fit","attributes":[
				{"attributeName":"Cut","attributeValueName":"Slim"}]}
		]}}`)
	})

	attrs, err := client.FetchAttributes(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Attribute{
		{Category: "Fabric", Name: "Material", Value: "Cotton"},
		{Category: "Fabric", Name: "Pattern", Value: "Striped"},
		{Category: "Fit", Name: "Cut", Value: "Slim"},
	}
	if !reflect.DeepEqual(attrs, want) {
		t.Errorf("attrs = %v, want %v", attrs, want)
	}
}

func TestFetchAttributesEmptyStructure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{}}`)
	})

	attrs, err := client.FetchAttributes(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs == nil || len(attrs) != 0 {
		t.Errorf("want empty non-nil slice, got %v", attrs)
	}
}

func TestFetchAttributesErrorOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"result":`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			if _, err := client.FetchAttributes(context.Background(), 42); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
