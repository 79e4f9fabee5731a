// Command indexbuild runs one-off or ad-hoc index builds from the command
// line: fetch a catalog export from S3, build the index, upload it, and
// publish a completion notification, or inspect an already-built index.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/brightlane/fuzzyindex/internal/buildpipeline"
	cfgpkg "github.com/brightlane/fuzzyindex/internal/config"
	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using system environment variables")
	}
	cfg := cfgpkg.Load()

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var catalogKey string

	root := &cobra.Command{
		Use:   "indexbuild",
		Short: "Build and inspect fuzzy search indexes",
	}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch a catalog export, build an index, and publish it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cfg, log, catalogKey)
		},
	}
	buildCmd.Flags().StringVar(&catalogKey, "catalog-key", "", "S3 key of the catalog export to build")
	buildCmd.MarkFlagRequired("catalog-key")

	var inspectPath string
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode a local index file and print summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(inspectPath)
		},
	}
	inspectCmd.Flags().StringVar(&inspectPath, "file", "", "path to a serialized index file")
	inspectCmd.MarkFlagRequired("file")

	root.AddCommand(buildCmd, inspectCmd)

	if err := root.Execute(); err != nil {
		log.Error("indexbuild failed", zap.Error(err))
		os.Exit(1)
	}
}

func runBuild(ctx context.Context, cfg *cfgpkg.Config, log *zap.Logger, catalogKey string) error {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	source := buildpipeline.NewCatalogSource(s3.NewFromConfig(awsCfg), cfg.CatalogBucket)
	notifier := buildpipeline.NewNotifier(sns.NewFromConfig(awsCfg), cfg.SNSTopicARN)
	builder := buildpipeline.NewBuilder(source, notifier, cfg.IndexBucket, log)

	buildID, err := builder.Run(ctx, buildpipeline.BuildRequest{
		CatalogKey: catalogKey,
		GramWidth:  cfg.GramWidth,
		CutoffPct:  cfg.DataCutoffPercentage,
	})
	if err != nil {
		return err
	}
	fmt.Printf("build %s completed\n", buildID)
	return nil
}

func runInspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read index file: %w", err)
	}
	idx, err := engine.DeserializeAll(data)
	if err != nil {
		return fmt.Errorf("decode index: %w", err)
	}
	fmt.Printf("products: %d\n", idx.Container.Len())
	fmt.Printf("gram width: %d\n", idx.Gram.N)
	fmt.Printf("categories: %d\n", len(idx.Categories.Categories))
	fmt.Printf("tags: %d\n", len(idx.Tags.Tags))
	fmt.Printf("orders: %v\n", idx.Orders.Names())
	return nil
}

func newLogger(cfg *cfgpkg.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
