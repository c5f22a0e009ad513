// Package cmd - CLI command: aws-visibility annotations
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"aws-visibility/annotation"
	"aws-visibility/feed"
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "Upload AWS IP range annotations to a VRF",
	Long: `Download the AWS IP ranges feed, aggregate it per CIDR prefix,
apply the service and region filters, and upload the result as IP
annotations (SaaS Provider / Region / Component columns) to the given
VRF's CMDB inventory.

Every run recomputes the full set from the current feed; the upload uses
the "add" operation, so existing annotations for other prefixes are left
untouched.`,
	RunE: runAnnotations,
}

var (
	annotationsVRF    string
	annotationsDryRun bool
)

func init() {
	rootCmd.AddCommand(annotationsCmd)

	annotationsCmd.Flags().StringVar(&annotationsVRF, "vrf", "", "VRF name to annotate")
	annotationsCmd.Flags().BoolVar(&annotationsDryRun, "dry-run", false, "print the CSV instead of uploading")

	annotationsCmd.MarkFlagRequired("vrf")
}

func runAnnotations(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc, err := fetchFeed(ctx)
	if err != nil {
		return err
	}

	merged := feed.MergePrefixes(doc.Prefixes)
	rows := annotation.Project(merged, buildPolicy())

	if annotationsDryRun {
		return annotation.WriteCSV(os.Stdout, rows)
	}

	client, err := newPlatformClient()
	if err != nil {
		return err
	}

	uploader := annotation.NewUploader(client)
	if err := uploader.Upload(ctx, annotationsVRF, rows); err != nil {
		return err
	}

	fmt.Println("=== Annotation Upload ===")
	fmt.Printf("VRF:       %s\n", annotationsVRF)
	fmt.Printf("Prefixes:  %d\n", len(doc.Prefixes))
	fmt.Printf("Uploaded:  %d rows\n", len(rows))
	return nil
}
