package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/younsl/snapsweep/internal/config"
	"github.com/younsl/snapsweep/internal/logging"
	"github.com/younsl/snapsweep/internal/models"
	"github.com/younsl/snapsweep/internal/version"
	"github.com/younsl/snapsweep/pkg/auditor"
	"github.com/younsl/snapsweep/pkg/aws"
	"github.com/younsl/snapsweep/pkg/formatter"
	"github.com/younsl/snapsweep/pkg/pricing"
	"github.com/younsl/snapsweep/pkg/utils"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// options collects the command line flags
type options struct {
	regions      []string
	dryRun       bool
	price        float64
	priceFromAPI bool
	output       string
	verbose      bool
	showVersion  bool
}

// startAuditSpinner creates and starts a spinner for the given region
func startAuditSpinner(region string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Auditing EBS snapshots in %s ...", utils.DescribeRegion(region))
	s.Start()
	return s
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "snapsweep",
		Short: "Find and delete stale EBS snapshots",
		Long: `snapsweep lists the EBS snapshots owned by the caller, compares them with the
volumes attached to running or stopped instances, and deletes the stale ones.

Snapshots tagged Keep=true or Environment=production are never touched.
Dry-run is the default; set DRY_RUN=false or pass --dry-run=false to delete.

Only warnings and deletion failures are logged by default while the spinner
runs. Pass --verbose to log every skip, stale, active and delete decision.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get())
				return nil
			}

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.DryRun = opts.dryRun
			}
			if cmd.Flags().Changed("price") {
				cfg.SnapshotPrice = opts.price
			}

			return run(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	flags.StringSliceVarP(&opts.regions, "region", "r", nil,
		fmt.Sprintf("AWS region to audit, repeatable or comma separated (default: $%s, instance metadata, then %s)",
			config.EnvRegion, utils.GetDefaultRegion()))
	flags.BoolVar(&opts.dryRun, "dry-run", config.DefaultDryRun,
		fmt.Sprintf("Only report stale snapshots (overrides $%s)", config.EnvDryRun))
	flags.Float64Var(&opts.price, "price", config.DefaultSnapshotPrice,
		fmt.Sprintf("Snapshot price in USD per GB-month (overrides $%s)", config.EnvSnapshotPrice))
	flags.BoolVar(&opts.priceFromAPI, "price-from-api", false,
		"Look up the snapshot price with the AWS Pricing API, falling back to the configured price")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "Output format: table or json")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log every snapshot decision")

	return rootCmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, cfg config.Config, opts *options) error {
	if opts.output != outputTable && opts.output != outputJSON {
		return fmt.Errorf("unsupported output format %q (use %s or %s)", opts.output, outputTable, outputJSON)
	}

	regions, err := resolveRegions(ctx, opts.regions, cfg.Region)
	if err != nil {
		return err
	}

	// Decision lines go to stderr so JSON output stays machine readable.
	lvl := log15.LvlWarn
	if opts.verbose {
		lvl = log15.LvlInfo
	}
	logger := logging.NewWithLevel(os.Stderr, lvl)

	var priceClient *pricing.Client
	if opts.priceFromAPI {
		priceClient, err = pricing.NewClient(ctx)
		if err != nil {
			logger.Warn("pricing API unavailable", "err", err)
		}
	}

	var results []*models.AuditResult
	prices := make(map[string]formatter.PriceInfo, len(regions))

	for i, region := range regions {
		awsCfg, err := aws.LoadConfig(ctx, region)
		if err != nil {
			return err
		}

		if i == 0 && opts.output == outputTable {
			printAccountHeader(ctx, out, aws.NewSTSClient(awsCfg), logger)
		}

		regionCfg := cfg
		regionCfg.Region = region
		price := formatter.PriceInfo{PerGB: cfg.SnapshotPrice, Source: pricing.PricingSourceConfigured}
		if priceClient != nil {
			price.PerGB, price.Source = priceClient.ResolveSnapshotPrice(ctx, region, cfg.SnapshotPrice, logger)
			regionCfg.SnapshotPrice = price.PerGB
		}
		prices[region] = price

		auditOpts := []auditor.Option{auditor.WithLogger(logger)}
		if cfg.MetricsNamespace != "" {
			auditOpts = append(auditOpts, auditor.WithPublisher(aws.NewMetricsPublisher(awsCfg, cfg.MetricsNamespace)))
		}
		a := auditor.New(aws.NewEC2Client(awsCfg), regionCfg, auditOpts...)

		scanStartTime := time.Now()
		var s *spinner.Spinner
		if !opts.verbose {
			s = startAuditSpinner(region)
		}

		result, err := a.Run(ctx)
		scanDuration := time.Since(scanStartTime)

		if s != nil {
			if err == nil {
				s.FinalMSG = fmt.Sprintf("✓ [%d stale snapshots found] %s analyzed - Completed in %.2f seconds\n",
					result.Count, region, scanDuration.Seconds())
			}
			s.Stop()
		}
		if err != nil {
			return fmt.Errorf("error auditing region %s: %w", region, err)
		}

		if opts.output == outputTable {
			formatter.PrintSnapshotsTable(out, result, price.PerGB, scanStartTime, scanDuration)
		}
		results = append(results, result)
	}

	if opts.output == outputJSON {
		return formatter.PrintJSON(out, results)
	}

	formatter.PrintAuditSummary(out, results, prices)
	if priceClient != nil {
		formatter.PrintPricingStats(out, priceClient.Stats())
	}
	if results[0].DryRun {
		fmt.Fprintln(out, "\nDry-run mode: no snapshots were deleted.")
	}
	return nil
}

// accountIdentity resolves the caller's account
type accountIdentity interface {
	GetAccountInfo(ctx context.Context) (*aws.AccountInfo, error)
}

// printAccountHeader prints the account line; a failed lookup only logs a warning
func printAccountHeader(ctx context.Context, out io.Writer, identity accountIdentity, logger log15.Logger) {
	account, err := identity.GetAccountInfo(ctx)
	if err != nil {
		logger.Warn("could not resolve account identity", "err", err)
		return
	}
	fmt.Fprintf(out, "Account: %s (%s)\n", account.AccountID, account.Arn)
}

// resolveRegions validates the requested regions, falling back to a single discovered region
func resolveRegions(ctx context.Context, requested []string, envRegion string) ([]string, error) {
	if len(requested) == 0 {
		return []string{aws.ResolveRegion(ctx, envRegion, aws.NewIMDSClient())}, nil
	}

	var valid []string
	for _, region := range requested {
		region = strings.TrimSpace(region)
		if utils.IsValidRegion(region) {
			valid = append(valid, region)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Skipping invalid region '%s'\n", region)
		}
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid regions specified")
	}
	return valid, nil
}
