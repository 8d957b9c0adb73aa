package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/younsl/snapsweep/internal/logging"
)

const archiveDoc = `{"product":{"productFamily":"Storage Snapshot","attributes":{"usagetype":"EBS:SnapshotArchiveStorage","regionCode":"us-east-1"}},
"terms":{"OnDemand":{"A.B":{"priceDimensions":{"A.B.C":{"unit":"GB-Mo","pricePerUnit":{"USD":"0.0125000000"}}}}}}}`

const standardDoc = `{"product":{"productFamily":"Storage Snapshot","attributes":{"usagetype":"EBS:SnapshotUsage","regionCode":"us-east-1"}},
"terms":{"OnDemand":{"D.E":{"priceDimensions":{"D.E.F":{"unit":"GB-Mo","pricePerUnit":{"USD":"0.0500000000"}}}}}}}`

type fakePricing struct {
	pages [][]string
	err   error
	calls int
}

func (f *fakePricing) GetProducts(_ context.Context, params *pricing.GetProductsInput, _ ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := 0
	if params.NextToken != nil {
		idx = 1
	}
	out := &pricing.GetProductsOutput{PriceList: f.pages[idx]}
	if idx+1 < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestSnapshotPriceSkipsArchiveTierAndCaches(t *testing.T) {
	fake := &fakePricing{pages: [][]string{{archiveDoc, `not json`}, {standardDoc}}}
	client := NewClientWithAPI(fake)

	price, source, err := client.SnapshotPrice(context.Background(), "us-east-1")
	if err != nil {
		t.Fatalf("SnapshotPrice: %v", err)
	}
	if price != 0.05 || source != PricingSourceAPI {
		t.Fatalf("expected 0.05 from API, got %v from %s", price, source)
	}

	price, source, err = client.SnapshotPrice(context.Background(), "us-east-1")
	if err != nil || price != 0.05 || source != PricingSourceCache {
		t.Fatalf("expected cached 0.05, got %v from %s (err=%v)", price, source, err)
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 API calls for two pages and none for the cache hit, got %d", fake.calls)
	}

	stats := client.Stats()
	if stats.Success != 1 || stats.CacheHit != 1 || stats.Failure != 0 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}

func TestResolveSnapshotPriceFallsBack(t *testing.T) {
	tests := []struct {
		name string
		fake *fakePricing
	}{
		{name: "api error", fake: &fakePricing{err: errors.New("AccessDenied")}},
		{name: "no match", fake: &fakePricing{pages: [][]string{{archiveDoc}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClientWithAPI(tt.fake)
			price, source := client.ResolveSnapshotPrice(context.Background(), "us-east-1", 0.07, logging.Discard())
			if price != 0.07 || source != PricingSourceConfigured {
				t.Fatalf("expected configured 0.07, got %v from %s", price, source)
			}
			if client.Stats().Failure != 1 {
				t.Fatalf("expected one recorded failure")
			}
		})
	}
}

func TestExtractGBMonthPriceUnexpectedUnit(t *testing.T) {
	var doc priceDocument
	raw := `{"terms":{"OnDemand":{"X":{"priceDimensions":{"Y":{"unit":"Hrs","pricePerUnit":{"USD":"1.0"}}}}}}}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := extractGBMonthPrice(doc); err == nil {
		t.Fatalf("expected error for hourly unit")
	}
	if _, err := extractGBMonthPrice(priceDocument{}); err == nil {
		t.Fatalf("expected error for empty terms")
	}
}
