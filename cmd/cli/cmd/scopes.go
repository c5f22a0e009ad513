// Package cmd - CLI command: aws-visibility create-scopes
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"aws-visibility/feed"
	"aws-visibility/scopes"
)

var createScopesCmd = &cobra.Command{
	Use:   "create-scopes",
	Short: "Build the AWS scope tree under a root scope",
	Long: `Download the AWS IP ranges feed, index which services are published
in which region, and create the matching three-tier scope hierarchy in
the platform:

  <root> -> AWS -> <region> -> <service>

Each scope carries an equality query on the annotation field the
annotations command populates, so annotated traffic classifies into the
tree automatically.

Intended for one-time initialization: there is no pre-existence check,
so re-running against an existing tree attempts duplicate creations and
the platform decides their fate. A failed region or service creation is
reported and the build moves on to the next sibling unless --fail-fast
is given.`,
	RunE: runCreateScopes,
}

var (
	scopesRootID   string
	scopesWorkers  int
	scopesFailFast bool
)

func init() {
	rootCmd.AddCommand(createScopesCmd)

	createScopesCmd.Flags().StringVar(&scopesRootID, "root-scope-id", "", "root scope to build the tree under")
	createScopesCmd.Flags().IntVar(&scopesWorkers, "workers", 1, "concurrent region builds")
	createScopesCmd.Flags().BoolVar(&scopesFailFast, "fail-fast", false, "abort on the first failed creation call")

	createScopesCmd.MarkFlagRequired("root-scope-id")
}

func runCreateScopes(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	client, err := newPlatformClient()
	if err != nil {
		return err
	}

	doc, err := fetchFeed(ctx)
	if err != nil {
		return err
	}

	index := feed.ExtractRegionServices(doc.Prefixes)

	builder := scopes.NewBuilder(client, &scopes.Config{
		Policy:   buildPolicy(),
		Workers:  scopesWorkers,
		FailFast: scopesFailFast,
	})

	result, err := builder.Build(ctx, scopesRootID, index)
	if err != nil {
		return err
	}

	fmt.Println("=== Scope Tree Build ===")
	fmt.Printf("Root scope:  %s\n", scopesRootID)
	fmt.Printf("Regions:     %d\n", len(index))
	fmt.Printf("Created:     %d\n", result.Created)
	fmt.Printf("Skipped:     %d\n", result.Skipped)
	fmt.Printf("Failed:      %d\n", len(result.Failures))

	if len(result.Failures) > 0 {
		for _, failure := range result.Failures {
			fmt.Printf("  ✗ %v\n", failure)
		}
	}
	return nil
}
