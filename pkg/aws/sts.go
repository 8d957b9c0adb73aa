package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSAPI is the subset of the STS API used by STSClient
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSClient struct for STS client
type STSClient struct {
	client STSAPI
}

// AccountInfo identifies the caller
type AccountInfo struct {
	AccountID string
	Arn       string
}

// NewSTSClient creates a new STSClient
func NewSTSClient(cfg aws.Config) *STSClient {
	return &STSClient{client: sts.NewFromConfig(cfg)}
}

// NewSTSClientWithAPI wraps an existing STS API implementation
func NewSTSClientWithAPI(api STSAPI) *STSClient {
	return &STSClient{client: api}
}

// GetAccountInfo returns the account the credentials belong to
func (c *STSClient) GetAccountInfo(ctx context.Context) (*AccountInfo, error) {
	output, err := c.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("error getting caller identity: %w", err)
	}

	return &AccountInfo{
		AccountID: aws.ToString(output.Account),
		Arn:       aws.ToString(output.Arn),
	}, nil
}
