package pos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farmsync/internal/adapters/pos/dto"
	"farmsync/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.POSConfig{
		BaseUrl:     server.URL,
		AccessToken: "test-token",
		Timeout:     5 * time.Second,
	}, server.Client())
}

func TestFullCatalogFollowsCursor(t *testing.T) {
	pages := map[string]dto.CatalogListResponse{
		"": {
			Objects: []dto.CatalogObject{{Type: "CATEGORY", ID: "c1"}},
			Cursor:  "page2",
		},
		"page2": {
			Objects: []dto.CatalogObject{{Type: "ITEM", ID: "i1"}},
			Cursor:  "page3",
		},
		"page3": {
			Objects: []dto.CatalogObject{{Type: "ITEM_VARIATION", ID: "v1"}},
		},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization header = %q", got)
		}
		if !strings.HasPrefix(r.URL.Path, "/catalog/list") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(pages[r.URL.Query().Get("cursor")])
	})

	objects, err := client.FullCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("got %d objects, want 3 across pages", len(objects))
	}
	if objects[2].ID != "v1" {
		t.Errorf("last object id = %s, want v1", objects[2].ID)
	}
}

func TestFullCatalogMaxPageGuard(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		// always hands back a cursor: a looping upstream
		_ = json.NewEncoder(w).Encode(dto.CatalogListResponse{Cursor: fmt.Sprintf("c%d", calls)})
	})

	_, err := client.FullCatalog(context.Background())
	if err == nil {
		t.Fatal("expected pagination guard error")
	}
	if calls > maxPages {
		t.Errorf("made %d calls, guard should stop at %d", calls, maxPages)
	}
}

func TestCompletedOrdersPaginates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req dto.SearchOrdersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.LocationIDs) != 1 || req.LocationIDs[0] != "loc1" {
			t.Errorf("location ids = %v", req.LocationIDs)
		}
		if req.Query.Filter.StateFilter.States[0] != "COMPLETED" {
			t.Errorf("state filter = %v", req.Query.Filter.StateFilter.States)
		}

		resp := dto.SearchOrdersResponse{Orders: []dto.Order{{ID: "o-" + req.Cursor}}}
		if req.Cursor == "" {
			resp.Cursor = "next"
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	orders, err := client.CompletedOrders(context.Background(), "loc1", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
}

func TestActiveLocationsFiltersInactive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.LocationsResponse{Locations: []dto.Location{
			{ID: "a", Name: "Farm Stand", Status: "ACTIVE"},
			{ID: "b", Name: "Old Market", Status: "INACTIVE"},
		}})
	})

	locations, err := client.ActiveLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 1 || locations[0].ID != "a" {
		t.Errorf("locations = %+v, want only the active one", locations)
	}
}
