package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"farmsync/internal/adapters/pos/dto"
	"farmsync/internal/config"
)

// maxPages bounds cursor pagination. The POS catalog and order sets are a few
// pages deep in practice; hitting the bound means the cursor is looping.
const maxPages = 200

// ReportService is what the sales report needs from the POS platform.
type ReportService interface {
	ActiveLocations(ctx context.Context) ([]dto.Location, error)
	FullCatalog(ctx context.Context) ([]dto.CatalogObject, error)
	CompletedOrders(ctx context.Context, locationID string, start, end time.Time) ([]dto.Order, error)
}

type Client struct {
	config     config.POSConfig
	httpClient *http.Client
}

func NewClient(cfg config.POSConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

func (c *Client) ActiveLocations(ctx context.Context) ([]dto.Location, error) {
	var resp dto.LocationsResponse
	if err := c.get(ctx, "/locations", &resp); err != nil {
		return nil, err
	}
	active := make([]dto.Location, 0, len(resp.Locations))
	for _, loc := range resp.Locations {
		if loc.Status == "ACTIVE" {
			active = append(active, loc)
		}
	}
	return active, nil
}

// FullCatalog walks the paginated catalog listing: an explicit cursor loop,
// finite, restartable from any cursor the POS hands back.
func (c *Client) FullCatalog(ctx context.Context) ([]dto.CatalogObject, error) {
	var objects []dto.CatalogObject
	cursor := ""
	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("catalog pagination exceeded %d pages", maxPages)
		}

		path := "/catalog/list?types=ITEM,ITEM_VARIATION,CATEGORY"
		if cursor != "" {
			path += "&cursor=" + url.QueryEscape(cursor)
		}

		var resp dto.CatalogListResponse
		if err := c.get(ctx, path, &resp); err != nil {
			return nil, err
		}
		objects = append(objects, resp.Objects...)

		if resp.Cursor == "" {
			return objects, nil
		}
		cursor = resp.Cursor
	}
}

// CompletedOrders collects every completed order for one location in the
// given window, following the search cursor until exhausted.
func (c *Client) CompletedOrders(ctx context.Context, locationID string, start, end time.Time) ([]dto.Order, error) {
	var orders []dto.Order
	cursor := ""
	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("order pagination exceeded %d pages for location %s", maxPages, locationID)
		}

		req := dto.SearchOrdersRequest{
			LocationIDs: []string{locationID},
			Query: dto.OrdersQuery{
				Filter: dto.OrdersFilter{
					DateTimeFilter: dto.DateTimeFilter{
						CreatedAt: dto.TimeRange{
							StartAt: start.UTC().Format(time.RFC3339),
							EndAt:   end.UTC().Format(time.RFC3339),
						},
					},
					StateFilter: dto.StateFilter{States: []string{"COMPLETED"}},
				},
			},
			Limit:  100,
			Cursor: cursor,
		}

		var resp dto.SearchOrdersResponse
		if err := c.post(ctx, "/orders/search", req, &resp); err != nil {
			return nil, err
		}
		orders = append(orders, resp.Orders...)

		if resp.Cursor == "" {
			return orders, nil
		}
		cursor = resp.Cursor
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pos request failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.config.BaseUrl, "/") + path
}
