package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// PricingAPI is the subset of the Pricing API used by Client
type PricingAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Client looks up prices and caches them per region
type Client struct {
	api PricingAPI

	mu    sync.RWMutex
	cache map[string]float64
	stats Stats
}

// NewClient creates a Pricing API client in the Pricing API region
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(pricingRegion))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}
	return NewClientWithAPI(pricing.NewFromConfig(cfg)), nil
}

// NewClientWithAPI wraps an existing Pricing API implementation
func NewClientWithAPI(api PricingAPI) *Client {
	return &Client{
		api:   api,
		cache: make(map[string]float64),
	}
}

// Stats returns a copy of the call statistics
func (c *Client) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// getProducts returns the raw price list documents matching the filters
func (c *Client) getProducts(ctx context.Context, serviceCode string, filters []types.Filter) ([]string, error) {
	input := &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(100),
	}

	var products []string
	paginator := pricing.NewGetProductsPaginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error calling AWS Pricing API: %w", err)
		}
		products = append(products, page.PriceList...)
	}

	return products, nil
}

func (c *Client) cached(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	price, ok := c.cache[key]
	if ok {
		c.stats.CacheHit++
	}
	return price, ok
}

func (c *Client) store(key string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = price
	c.stats.Success++
}

func (c *Client) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Failure++
}
