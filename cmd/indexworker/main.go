// Command indexworker polls a build-request queue and runs the build
// pipeline for each message: receive, process with a concurrency gate,
// delete on success.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/brightlane/fuzzyindex/internal/buildpipeline"
	cfgpkg "github.com/brightlane/fuzzyindex/internal/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// buildRequestMessage is the SQS message body shape: which catalog export
// to build.
type buildRequestMessage struct {
	CatalogKey string `json:"catalog_key"`
}

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
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatal("load aws config", zap.Error(err))
	}

	sqsClient := sqs.NewFromConfig(awsCfg)
	source := buildpipeline.NewCatalogSource(s3.NewFromConfig(awsCfg), cfg.CatalogBucket)
	notifier := buildpipeline.NewNotifier(sns.NewFromConfig(awsCfg), cfg.SNSTopicARN)
	builder := buildpipeline.NewBuilder(source, notifier, cfg.IndexBucket, log)

	gate := make(chan struct{}, cfg.WorkerConcurrency)

	log.Info("worker started", zap.String("queue", cfg.SQSQueueURL), zap.Int("concurrency", cfg.WorkerConcurrency))

	for {
		out, err := sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(cfg.SQSQueueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   30,
		})
		if err != nil {
			log.Error("receive message failed", zap.Error(err))
			continue
		}
		if len(out.Messages) == 0 {
			continue
		}

		for _, m := range out.Messages {
			msg := m
			go func() {
				gate <- struct{}{}
				defer func() { <-gate }()
				processMessage(ctx, sqsClient, builder, cfg, log, msg)
			}()
		}
	}
}

func processMessage(ctx context.Context, client *sqs.Client, builder *buildpipeline.Builder, cfg *cfgpkg.Config, log *zap.Logger, msg sqstypes.Message) {
	var req buildRequestMessage
	if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &req); err != nil {
		log.Warn("dropping malformed build request", zap.Error(err))
		deleteMessage(ctx, client, cfg.SQSQueueURL, msg.ReceiptHandle, log)
		return
	}

	if _, err := builder.Run(ctx, buildpipeline.BuildRequest{
		CatalogKey: req.CatalogKey,
		GramWidth:  cfg.GramWidth,
		CutoffPct:  cfg.DataCutoffPercentage,
	}); err != nil {
		log.Error("build failed, leaving message for retry", zap.Error(err))
		return
	}

	deleteMessage(ctx, client, cfg.SQSQueueURL, msg.ReceiptHandle, log)
}

func deleteMessage(ctx context.Context, client *sqs.Client, queueURL string, receiptHandle *string, log *zap.Logger) {
	_, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		log.Error("delete message failed", zap.Error(err))
	}
}
