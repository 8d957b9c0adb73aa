package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/inconshreveable/log15"
	"github.com/younsl/snapsweep/internal/config"
	"github.com/younsl/snapsweep/internal/logging"
	"github.com/younsl/snapsweep/internal/models"
	"github.com/younsl/snapsweep/internal/version"
	"github.com/younsl/snapsweep/pkg/auditor"
	"github.com/younsl/snapsweep/pkg/aws"
)

// handler holds the clients created once per cold start
type handler struct {
	awsCfg awssdk.Config
	ec2    *aws.EC2Client
	log    log15.Logger
}

// Handle runs one audit. The event payload is ignored; configuration is
// re-read from the environment on every invocation.
func (h *handler) Handle(ctx context.Context, _ json.RawMessage) (*models.AuditResult, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	opts := []auditor.Option{auditor.WithLogger(h.log)}
	if cfg.MetricsNamespace != "" {
		opts = append(opts, auditor.WithPublisher(aws.NewMetricsPublisher(h.awsCfg, cfg.MetricsNamespace)))
	}

	return auditor.New(h.ec2, cfg, opts...).Run(ctx)
}

func main() {
	logger := logging.New(os.Stdout)
	info := version.Get()
	logger.Info("starting snapsweep", "version", info.Version, "commit", info.GitCommit, "go", info.GoVersion)

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	awsCfg, err := aws.LoadConfig(context.Background(), cfg.Region)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	h := &handler{
		awsCfg: awsCfg,
		ec2:    aws.NewEC2Client(awsCfg),
		log:    logger,
	}
	lambda.Start(h.Handle)
}
