package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/inconshreveable/log15"
)

// snapshotUsageSuffix marks standard-tier snapshot storage; archive tier uses SnapshotArchiveStorage
const snapshotUsageSuffix = "EBS:SnapshotUsage"

// priceDocument is the subset of a Pricing API price list entry we read
type priceDocument struct {
	Product struct {
		ProductFamily string            `json:"productFamily"`
		Attributes    map[string]string `json:"attributes"`
	} `json:"product"`
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]struct {
				Unit         string            `json:"unit"`
				PricePerUnit map[string]string `json:"pricePerUnit"`
			} `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

// SnapshotPrice returns the standard-tier EBS snapshot price per GB-month in the region
func (c *Client) SnapshotPrice(ctx context.Context, region string) (float64, PricingSource, error) {
	cacheKey := fmt.Sprintf("snapshot:%s", region)
	if price, ok := c.cached(cacheKey); ok {
		return price, PricingSourceCache, nil
	}

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("productFamily"),
			Value: aws.String("Storage Snapshot"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("regionCode"),
			Value: aws.String(region),
		},
	}

	products, err := c.getProducts(ctx, "AmazonEC2", filters)
	if err != nil {
		c.recordFailure()
		return 0, PricingSourceAPI, err
	}

	for _, product := range products {
		var doc priceDocument
		if err := json.Unmarshal([]byte(product), &doc); err != nil {
			continue
		}
		if !strings.HasSuffix(doc.Product.Attributes["usagetype"], snapshotUsageSuffix) {
			continue
		}

		price, err := extractGBMonthPrice(doc)
		if err != nil {
			c.recordFailure()
			return 0, PricingSourceAPI, err
		}
		c.store(cacheKey, price)
		return price, PricingSourceAPI, nil
	}

	c.recordFailure()
	return 0, PricingSourceAPI, fmt.Errorf("no snapshot storage price found in region %s", region)
}

// ResolveSnapshotPrice looks the price up and falls back to the configured one on any failure
func (c *Client) ResolveSnapshotPrice(ctx context.Context, region string, configured float64, logger log15.Logger) (float64, PricingSource) {
	price, source, err := c.SnapshotPrice(ctx, region)
	if err != nil {
		logger.Warn("using configured snapshot price", "region", region, "price", configured, "err", err)
		return configured, PricingSourceConfigured
	}
	return price, source
}

func extractGBMonthPrice(doc priceDocument) (float64, error) {
	for _, offer := range doc.Terms.OnDemand {
		for _, dimension := range offer.PriceDimensions {
			if dimension.Unit != "GB-Mo" && dimension.Unit != "GB-month" {
				return 0, fmt.Errorf("unexpected pricing unit: %s", dimension.Unit)
			}

			usd, ok := dimension.PricePerUnit["USD"]
			if !ok {
				return 0, fmt.Errorf("USD price not found")
			}

			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return 0, fmt.Errorf("error parsing price: %w", err)
			}
			return price, nil
		}
	}
	return 0, fmt.Errorf("no price dimension found")
}
