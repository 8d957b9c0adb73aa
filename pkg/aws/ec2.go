package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/younsl/snapsweep/internal/models"
	"github.com/younsl/snapsweep/pkg/utils"
)

// ActiveInstanceStates lists the instance states whose volumes count as in use
var ActiveInstanceStates = []string{"running", "stopped"}

// EC2API is the subset of the EC2 API used by EC2Client
type EC2API interface {
	ec2.DescribeSnapshotsAPIClient
	ec2.DescribeInstancesAPIClient
	DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
}

// EC2Client struct for EC2 client
type EC2Client struct {
	client EC2API
	region string
}

// NewEC2Client creates a new EC2Client from a loaded AWS config
func NewEC2Client(cfg aws.Config) *EC2Client {
	return &EC2Client{
		client: ec2.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// NewEC2ClientWithAPI wraps an existing EC2 API implementation
func NewEC2ClientWithAPI(api EC2API, region string) *EC2Client {
	return &EC2Client{
		client: api,
		region: region,
	}
}

// Region returns the region the client talks to
func (c *EC2Client) Region() string {
	return c.region
}

// GetActiveVolumeIDs returns the IDs of EBS volumes attached to running or stopped instances
func (c *EC2Client) GetActiveVolumeIDs(ctx context.Context) (map[string]struct{}, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: ActiveInstanceStates,
			},
		},
	}

	active := make(map[string]struct{})
	paginator := ec2.NewDescribeInstancesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				for _, mapping := range instance.BlockDeviceMappings {
					if mapping.Ebs == nil || mapping.Ebs.VolumeId == nil {
						continue
					}
					active[*mapping.Ebs.VolumeId] = struct{}{}
				}
			}
		}
	}

	return active, nil
}

// ListOwnedSnapshots returns every snapshot owned by the caller in listing order
func (c *EC2Client) ListOwnedSnapshots(ctx context.Context) ([]models.SnapshotInfo, error) {
	input := &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	}

	snapshots := []models.SnapshotInfo{}
	paginator := ec2.NewDescribeSnapshotsPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EBS snapshots: %w", err)
		}

		for _, snapshot := range page.Snapshots {
			snapshots = append(snapshots, toSnapshotInfo(snapshot))
		}
	}

	return snapshots, nil
}

// DeleteSnapshot deletes a single snapshot by ID
func (c *EC2Client) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	_, err := c.client.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(snapshotID),
	})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("error deleting snapshot %s (%s): %w", snapshotID, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("error deleting snapshot %s: %w", snapshotID, err)
}

func toSnapshotInfo(snapshot types.Snapshot) models.SnapshotInfo {
	info := models.SnapshotInfo{
		SnapshotID:  utils.SafeDeref(snapshot.SnapshotId),
		Name:        utils.GetName(snapshot.Tags),
		VolumeID:    utils.SafeDeref(snapshot.VolumeId),
		SizeGB:      utils.SafeDerefInt32(snapshot.VolumeSize),
		Description: utils.SafeDeref(snapshot.Description),
		Tags:        utils.GetTagsMap(snapshot.Tags),
	}
	if snapshot.StartTime != nil {
		info.StartTime = *snapshot.StartTime
	}
	return info
}
