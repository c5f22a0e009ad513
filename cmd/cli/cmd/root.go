// Package cmd provides the CLI commands for aws-visibility.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"aws-visibility/feed"
	"aws-visibility/internal/config"
	"aws-visibility/internal/errors"
	"aws-visibility/internal/logging"
	"aws-visibility/policy"
	"aws-visibility/tetration"
)

var (
	cfgFile     string
	verbose     bool
	clusterURL  string
	credentials string
	includes    []string
	excludes    []string
	regions     []string
	noVerify    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aws-visibility",
	Short: "Sync AWS IP ranges into the security platform",
	Long: `aws-visibility keeps a security-analytics cluster's view of AWS
infrastructure current. It downloads the published AWS IP ranges feed,
filters it by service and region, and either uploads the result as IP
annotations or builds the matching scope tree.

By default every region and service is synced. Narrow the scope with
the repeatable --include, --exclude and --region options.

Examples:
  aws-visibility --url https://cluster.example.com annotations --vrf Default
  aws-visibility -u https://cluster.example.com -r us-east-1 -r us-west-2 annotations --vrf Default
  aws-visibility -u https://cluster.example.com create-scopes --root-scope-id 5efcfdf5497d4f474f1707c2`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&clusterURL, "url", "u", "", "cluster URL (https://cluster.fqdn.com)")
	rootCmd.PersistentFlags().StringVarP(&credentials, "credentials", "c", config.DefaultCredentialsFile, "API credentials file")
	rootCmd.PersistentFlags().StringArrayVarP(&includes, "include", "i", nil, "service to allow (repeatable)")
	rootCmd.PersistentFlags().StringArrayVarP(&excludes, "exclude", "e", nil, "service to disallow (repeatable)")
	rootCmd.PersistentFlags().StringArrayVarP(&regions, "region", "r", nil, "region to allow (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&noVerify, "no-verify", false, "do not verify cluster HTTPS/TLS certificate")

	rootCmd.AddCommand(versionCmd)
}

// initConfig loads the optional config file, then lets explicit flags
// override it before logging is initialized.
func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	flags := rootCmd.PersistentFlags()
	if flags.Changed("url") {
		cfg.Cluster.URL = clusterURL
	}
	if flags.Changed("credentials") {
		cfg.Cluster.CredentialsFile = credentials
	}
	if flags.Changed("no-verify") {
		cfg.Cluster.InsecureSkipVerify = noVerify
	}
	if flags.Changed("include") {
		cfg.Filters.Include = includes
	}
	if flags.Changed("exclude") {
		cfg.Filters.Exclude = excludes
	}
	if flags.Changed("region") {
		cfg.Filters.Regions = regions
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// buildPolicy turns the effective filter configuration into the policy
// both sync paths consume.
func buildPolicy() policy.Policy {
	cfg := config.Get()
	return policy.New(cfg.Filters.Include, cfg.Filters.Exclude, cfg.Filters.Regions)
}

// newPlatformClient builds the signed API client from the effective
// cluster configuration.
func newPlatformClient() (*tetration.Client, error) {
	cfg := config.Get()
	if cfg.Cluster.URL == "" {
		return nil, errors.Config("cluster URL is required (--url or config file)")
	}
	return tetration.NewClient(&tetration.Config{
		URL:                cfg.Cluster.URL,
		CredentialsFile:    cfg.Cluster.CredentialsFile,
		InsecureSkipVerify: cfg.Cluster.InsecureSkipVerify,
		Timeout:            time.Duration(cfg.Cluster.TimeoutSeconds) * time.Second,
	})
}

// fetchFeed downloads and validates the IP ranges document.
func fetchFeed(ctx context.Context) (*feed.Document, error) {
	cfg := config.Get()
	client := feed.NewClient(&feed.ClientConfig{
		URL:     cfg.Feed.URL,
		Timeout: time.Duration(cfg.Feed.TimeoutSeconds) * time.Second,
	})
	return client.Fetch(ctx)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("aws-visibility version 0.1.0")
	},
}
