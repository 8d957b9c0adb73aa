package pricing

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceConfigured indicates the configured price was used
	PricingSourceConfigured PricingSource = "Configured"
)

// pricingRegion hosts the Pricing API endpoint (also available in ap-south-1)
const pricingRegion = "us-east-1"

// Stats counts Pricing API outcomes
type Stats struct {
	Success  int
	Failure  int
	CacheHit int
}
