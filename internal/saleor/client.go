package saleor

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"saleor-tma-bot/internal/catalog"
	"saleor-tma-bot/pkg/config"
	pkgerrors "saleor-tma-bot/pkg/errors"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
)

const shopsPageSize = 20

// Client queries the Saleor GraphQL API. Every call is a single attempt; failures
// come back as CATALOG_UNAVAILABLE.
type Client struct {
	gql     *graphql.Client
	token   string
	limit   int
	logg    *logger.Logger
	metrics *metrics.Bot
}

func NewClient(cfg config.SaleorConfig, logg *logger.Logger, m *metrics.Bot) *Client {
	c := &Client{
		token:   cfg.ChannelToken,
		limit:   cfg.ProductLimit,
		logg:    logg,
		metrics: m,
	}
	if c.limit <= 0 {
		c.limit = 20
	}
	if cfg.Enabled() {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.gql = graphql.NewClient(strings.TrimSpace(cfg.APIURL), graphql.WithHTTPClient(&http.Client{Timeout: timeout}))
	}
	return c
}

// Configured reports whether a live query path exists.
func (c *Client) Configured() bool {
	return c != nil && c.gql != nil
}

func (c *Client) Shops(ctx context.Context) (*ShopsResponse, error) {
	req := graphql.NewRequest(shopsQuery)
	req.Var("first", shopsPageSize)
	var resp ShopsResponse
	if err := c.run(ctx, "list_restaurants", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Products lists up to first products, filtered by shop when shopID is set.
func (c *Client) Products(ctx context.Context, first int, shopID string) (*ProductsResponse, error) {
	if first <= 0 {
		first = c.limit
	}
	req := graphql.NewRequest(productsQuery)
	req.Var("first", first)
	if shopID != "" {
		req.Var("filter", map[string]any{"products": map[string]any{"shop": shopID}})
	}
	var resp ProductsResponse
	if err := c.run(ctx, "list_products", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Product fetches one product. A missing product is NOT_FOUND.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	req := graphql.NewRequest(productQuery)
	req.Var("id", id)
	var resp ProductResponse
	if err := c.run(ctx, "get_product", req, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return resp.Product, nil
}

func (c *Client) ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error) {
	resp, err := c.Shops(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Restaurants(), nil
}

func (c *Client) ListProducts(ctx context.Context, limit int, restaurantID catalog.ID) ([]catalog.Item, error) {
	resp, err := c.Products(ctx, limit, restaurantID.String())
	if err != nil {
		return nil, err
	}
	return resp.Items(), nil
}

// CheckAvailability runs a minimal probe; any failure reads as false.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	var resp ShopsResponse
	return c.run(ctx, "ping", graphql.NewRequest(pingQuery), &resp) == nil
}

func (c *Client) run(ctx context.Context, operation string, req *graphql.Request, dest any) error {
	if !c.Configured() {
		return pkgerrors.New(pkgerrors.CodeCatalogUnavailable, "saleor api url not configured")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	err := c.gql.Run(ctx, req, dest)
	c.metrics.ObserveGateway(operation, started, err)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithFields(ctx, map[string]any{
				"operation": operation,
				"error":     err.Error(),
			}), "saleor.query_failed")
		}
		return pkgerrors.Wrap(pkgerrors.CodeCatalogUnavailable, err, "saleor "+operation+" failed")
	}
	return nil
}
