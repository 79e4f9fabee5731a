package buildpipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// BuildCompletedEvent is published to SNS once a build finishes uploading
// its serialized index.
type BuildCompletedEvent struct {
	BuildID      string    `json:"build_id"`
	IndexBucket  string    `json:"index_bucket"`
	IndexKey     string    `json:"index_key"`
	ProductCount int       `json:"product_count"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Notifier publishes index.built events to an SNS topic.
type Notifier struct {
	sns      *sns.Client
	topicARN string
}

// NewNotifier constructs a Notifier bound to client and topicARN.
func NewNotifier(client *sns.Client, topicARN string) *Notifier {
	return &Notifier{sns: client, topicARN: topicARN}
}

// Publish sends event as the message body of an SNS notification.
func (n *Notifier) Publish(ctx context.Context, event BuildCompletedEvent) error {
	if n.topicARN == "" {
		return fmt.Errorf("buildpipeline: missing SNS topic arn")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("buildpipeline: marshal build event: %w", err)
	}

	_, err = n.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("buildpipeline: publish build event: %w", err)
	}
	return nil
}
