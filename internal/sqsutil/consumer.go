package sqsutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// ReceiveAPI is the subset of the SQS client the consumer depends on.
type ReceiveAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Message is one received queue message. The receipt handle is needed to
// delete the message once the batch it belonged to has been processed.
type Message struct {
	MessageID     string
	ReceiptHandle string
	Body          string
}

// NewClient builds the process-wide SQS client.
func NewClient(ctx context.Context, region string) (*sqs.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return sqs.NewFromConfig(cfg), nil
}

// Consumer receives and deletes messages on one queue.
type Consumer struct {
	client ReceiveAPI
	config ConsumerConfig
}

func NewConsumer(client ReceiveAPI, config ConsumerConfig) *Consumer {
	return &Consumer{
		client: client,
		config: config,
	}
}

// ReceiveMessages long-polls the queue for one batch. An empty slice means
// the wait timed out with nothing to do.
func (c *Consumer) ReceiveMessages(ctx context.Context) ([]Message, error) {
	out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.config.QueueURL),
		MaxNumberOfMessages: c.config.MaxMessages,
		WaitTimeSeconds:     c.config.WaitTimeSeconds,
		VisibilityTimeout:   c.config.VisibilityTimeout,
	})
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(out.Messages))
	for _, msg := range out.Messages {
		messages = append(messages, Message{
			MessageID:     aws.ToString(msg.MessageId),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			Body:          aws.ToString(msg.Body),
		})
	}
	return messages, nil
}

// DeleteMessage acknowledges one message. The relay deletes every message
// of a processed batch: failures are reported through counters, not
// through redelivery.
func (c *Consumer) DeleteMessage(ctx context.Context, receiptHandle string) error {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.config.QueueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	return err
}
