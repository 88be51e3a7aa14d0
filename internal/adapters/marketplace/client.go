package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"farmsync/internal/adapters/marketplace/dto"
	"farmsync/internal/config"
	"farmsync/internal/observability"
)

// ProductService is everything the synchronizers need from the marketplace.
type ProductService interface {
	GetProduct(ctx context.Context, marketplaceID int64) (dto.Product, error)
	UpdateProductPrices(ctx context.Context, marketplaceID int64, update dto.ProductUpdate) error
	PatchInventory(ctx context.Context, marketplaceID int64, patch dto.InventoryPatch) error
	AddToPriceList(ctx context.Context, priceListID, marketplaceID int64) error
}

type Client struct {
	config     config.MarketplaceConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     *TokenCache
	log        *zap.SugaredLogger
}

func NewClient(cfg config.MarketplaceConfig, httpClient *http.Client, log *zap.SugaredLogger) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	c := &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		log:        log,
	}
	c.tokens = NewTokenCache(c.acquireToken)
	return c
}

// Tokens exposes the shared token cache so other marketplace callers reuse
// the same single-flight acquisition.
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

func (c *Client) GetProduct(ctx context.Context, marketplaceID int64) (dto.Product, error) {
	var product dto.Product
	path := fmt.Sprintf("products/%d/", marketplaceID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &product); err != nil {
		return dto.Product{}, err
	}
	return product, nil
}

func (c *Client) UpdateProductPrices(ctx context.Context, marketplaceID int64, update dto.ProductUpdate) error {
	path := fmt.Sprintf("products/%d/?expand=vendor", marketplaceID)
	return c.doJSON(ctx, http.MethodPatch, path, update, nil)
}

func (c *Client) PatchInventory(ctx context.Context, marketplaceID int64, patch dto.InventoryPatch) error {
	path := fmt.Sprintf("products/%d/", marketplaceID)
	return c.doJSON(ctx, http.MethodPatch, path, patch, nil)
}

func (c *Client) AddToPriceList(ctx context.Context, priceListID, marketplaceID int64) error {
	body := dto.AddToPriceListRequest{
		PriceListID: priceListID,
		ProductID:   marketplaceID,
	}
	return c.doJSON(ctx, http.MethodPost, "pricelists/add/", body, nil)
}

func (c *Client) acquireToken(ctx context.Context) (string, time.Time, error) {
	body, err := json.Marshal(dto.TokenRequest{
		Username: c.config.Username,
		Password: c.config.Password,
	})
	if err != nil {
		return "", time.Time{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("token"), bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", time.Time{}, newStatusError(resp.StatusCode, resp.Status, respBody)
	}

	var tokenResp dto.TokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", time.Time{}, err
	}
	if tokenResp.Access == "" {
		return "", time.Time{}, fmt.Errorf("token response has no access token")
	}

	observability.TokenAcquisitionTotal.Inc()
	return tokenResp.Access, jwtExpiry(tokenResp.Access, time.Now()), nil
}

// doJSON performs one authenticated call with rate limiting, bounded retries
// on throttle/5xx answers, and a single re-auth when the marketplace rejects
// a cached token.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	reauthed := false
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		token, err := c.tokens.GetValidToken(ctx)
		if err != nil {
			return err
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		err = c.send(req, out)
		if err == nil {
			return nil
		}

		if isAuthError(err) && !reauthed {
			reauthed = true
			c.tokens.Invalidate()
			continue
		}
		if isRetryableHTTPError(err) && attempt < retryMax {
			if c.log != nil {
				c.log.Warnw("marketplace request retry", "method", method, "path", path, "attempt", attempt+1, "error", err)
			}
			if sleepErr := sleepWithContext(ctx, retryDelay(attempt)); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		return err
	}
}

func (c *Client) send(req *http.Request, out any) error {
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
		return newStatusError(resp.StatusCode, resp.Status, respBody)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.config.BaseUrl, "/") + "/" + path
}
