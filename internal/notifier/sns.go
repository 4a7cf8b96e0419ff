package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
)

// ErrMissingTopic is returned when no SNS topic ARN is configured.
var ErrMissingTopic = errors.New("missing SNS topic ARN")

// Publisher is the part of *sns.Client the notifier uses.
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes readings to an SNS topic
type SNSNotifier struct {
	publisher Publisher
	topicARN  string
}

// NewSNSNotifier creates an SNS notifier publishing through publisher.
func NewSNSNotifier(publisher Publisher, topicARN string) (*SNSNotifier, error) {
	if topicARN == "" {
		return nil, ErrMissingTopic
	}
	return &SNSNotifier{publisher: publisher, topicARN: topicARN}, nil
}

// NewSNSNotifierFromEnv creates an SNS notifier using the default AWS credential chain.
func NewSNSNotifierFromEnv(ctx context.Context, topicARN string) (*SNSNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewSNSNotifier(sns.NewFromConfig(cfg), topicARN)
}

// Notify publishes the full reading message
func (n *SNSNotifier) Notify(ctx context.Context, reading *resolver.Reading) error {
	if err := checkReading(reading); err != nil {
		return err
	}

	input := &sns.PublishInput{
		Message:  aws.String(FormatMessage(reading)),
		Subject:  aws.String("QT " + reading.Date),
		TopicArn: aws.String(n.topicARN),
	}

	out, err := n.publisher.Publish(ctx, input)
	if err != nil {
		logger.Error("SNS publish failed", logger.Fields{"topic_arn": n.topicARN}, err)
		return fmt.Errorf("error publishing to AWS SNS topic %s: %w", n.topicARN, err)
	}

	logger.Info("Published to SNS", logger.Fields{
		"date":       reading.Date,
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}
