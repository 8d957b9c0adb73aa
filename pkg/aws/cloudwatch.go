package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/snapsweep/internal/models"
)

// CloudWatchAPI is the subset of the CloudWatch API used by MetricsPublisher
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsPublisher publishes audit results as CloudWatch metrics
type MetricsPublisher struct {
	client    CloudWatchAPI
	namespace string
	now       func() time.Time
}

// NewMetricsPublisher creates a new MetricsPublisher
func NewMetricsPublisher(cfg aws.Config, namespace string) *MetricsPublisher {
	return NewMetricsPublisherWithAPI(cloudwatch.NewFromConfig(cfg), namespace)
}

// NewMetricsPublisherWithAPI wraps an existing CloudWatch API implementation
func NewMetricsPublisherWithAPI(api CloudWatchAPI, namespace string) *MetricsPublisher {
	return &MetricsPublisher{
		client:    api,
		namespace: namespace,
		now:       time.Now,
	}
}

// Publish sends one data point per summary figure, dimensioned by region and mode
func (p *MetricsPublisher) Publish(ctx context.Context, result *models.AuditResult) error {
	mode := "delete"
	if result.DryRun {
		mode = "dry-run"
	}
	dimensions := []types.Dimension{
		{Name: aws.String("Region"), Value: aws.String(result.Region)},
		{Name: aws.String("Mode"), Value: aws.String(mode)},
	}
	timestamp := p.now()

	datum := func(name string, value float64, unit types.StandardUnit) types.MetricDatum {
		return types.MetricDatum{
			MetricName: aws.String(name),
			Dimensions: dimensions,
			Timestamp:  aws.Time(timestamp),
			Unit:       unit,
			Value:      aws.Float64(value),
		}
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []types.MetricDatum{
			datum("StaleSnapshotCount", float64(result.Count), types.StandardUnitCount),
			datum("StaleSnapshotGB", float64(result.TotalGB), types.StandardUnitGigabytes),
			datum("EstimatedMonthlySaving", result.EstimatedMonthlySaving, types.StandardUnitNone),
			datum("DeletedSnapshotCount", float64(len(result.DeletedSnapshots)), types.StandardUnitCount),
			datum("FailedDeletionCount", float64(len(result.FailedSnapshots)), types.StandardUnitCount),
		},
	}

	if _, err := p.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("error publishing metrics to %s: %w", p.namespace, err)
	}
	return nil
}
