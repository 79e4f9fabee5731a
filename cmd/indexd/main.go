// Command indexd serves the host API over HTTP: it loads a
// serialized index from S3 at startup and answers search, facet, and
// suggestion queries against it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/brightlane/fuzzyindex/internal/api"
	cfgpkg "github.com/brightlane/fuzzyindex/internal/config"
	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using system environment variables")
	}
	cfg := cfgpkg.Load()

	var log *zap.Logger
	var err error
	if cfg.IsDevelopment() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	data, err := fetchLatestIndex(ctx, cfg)
	if err != nil {
		log.Fatal("failed to load index at startup", zap.Error(err))
	}

	e, ok := engine.Initialize(data, log)
	if !ok {
		log.Fatal("index bytes failed to decode")
	}

	router := api.NewRouter(e, log)
	log.Info("indexd listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func fetchLatestIndex(ctx context.Context, cfg *cfgpkg.Config) ([]byte, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)

	key := os.Getenv("INDEX_OBJECT_KEY")
	if key == "" {
		return nil, fmt.Errorf("INDEX_OBJECT_KEY is not set")
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(cfg.IndexBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch index object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read index object body: %w", err)
	}
	return data, nil
}
