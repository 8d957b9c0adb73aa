package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/younsl/snapsweep/pkg/utils"
)

// IMDSAPI is the subset of the instance metadata client used for region discovery
type IMDSAPI interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// imdsTimeout bounds the metadata lookup off EC2, where the endpoint never answers
const imdsTimeout = 2 * time.Second

// ResolveRegion picks the region to audit: the explicit value, then instance
// metadata, then the default region
func ResolveRegion(ctx context.Context, explicit string, metadata IMDSAPI) string {
	if explicit != "" {
		return explicit
	}

	if metadata != nil {
		ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
		defer cancel()

		output, err := metadata.GetRegion(ctx, &imds.GetRegionInput{})
		if err == nil && output.Region != "" {
			return output.Region
		}
	}

	return utils.GetDefaultRegion()
}

// NewIMDSClient creates an instance metadata client with SDK defaults
func NewIMDSClient() IMDSAPI {
	return imds.New(imds.Options{})
}
