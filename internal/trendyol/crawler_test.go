package trendyol

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendsync/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, 5, time.Millisecond), srv
}

func productsPage(n int, startID int64) string {
	out := `{"result":{"products":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"id":%d,"name":"Item %d","price":{"sellingPrice":10}}`, startID+int64(i), i+1)
	}
	return out + `]}}`
}

func TestCrawlCategoryStopsOnEmptyPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pi") {
		case "1":
			fmt.Fprint(w, productsPage(3, 100))
		default:
			fmt.Fprint(w, `{"result":{"products":[]}}`)
		}
	})

	res := client.CrawlCategory(context.Background(), models.Category{Name: "a", Path: "/a"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Products) != 3 {
		t.Errorf("got %d products, want 3", len(res.Products))
	}
}

func TestCrawlCategoryNotFoundIsTerminal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	res := client.CrawlCategory(context.Background(), models.Category{Name: "b", Path: "/b"})
	if res.Err != nil {
		t.Fatalf("not-found must not surface an error, got: %v", res.Err)
	}
	if len(res.Products) != 0 {
		t.Errorf("got %d products, want 0", len(res.Products))
	}
}

func TestCrawlCategoryKeepsPartialResultsOnFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pi") {
		case "1":
			fmt.Fprint(w, productsPage(2, 200))
		default:
			http.Error(w, "upstream broken", http.StatusInternalServerError)
		}
	})

	res := client.CrawlCategory(context.Background(), models.Category{Name: "c", Path: "/c"})
	if res.Err == nil {
		t.Fatal("expected an error for the failed page")
	}
	if len(res.Products) != 2 {
		t.Errorf("partial results lost: got %d products, want 2", len(res.Products))
	}
}

func TestCrawlCategoryHonorsPageCeiling(t *testing.T) {
	var pages int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pages++
		fmt.Fprint(w, productsPage(1, int64(pages)))
	})

	res := client.CrawlCategory(context.Background(), models.Category{Name: "d", Path: "/d"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if pages != 5 {
		t.Errorf("fetched %d pages, want exactly the ceiling of 5", pages)
	}
	if len(res.Products) != 5 {
		t.Errorf("got %d products, want 5", len(res.Products))
	}
}

func TestFetchPageSendsGenderPartition(t *testing.T) {
	var gotGender string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotGender = r.URL.Query().Get("userGenderId")
		fmt.Fprint(w, `{"result":{"products":[]}}`)
	})

	client.FetchPage(context.Background(), models.Category{Primary: "ERKEK AYAKKABI", Path: "/x"}, 1)
	if gotGender != "2" {
		t.Errorf("ERKEK category sent userGenderId=%s, want 2", gotGender)
	}

	client.FetchPage(context.Background(), models.Category{Primary: "KADIN AYAKKABI", Path: "/x"}, 1)
	if gotGender != "1" {
		t.Errorf("KADIN category sent userGenderId=%s, want 1", gotGender)
	}
}
