package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/gitdavehorsley/s3filereplicator/internal/relay"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3util"
	"github.com/gitdavehorsley/s3filereplicator/internal/util"
)

// Response is the invocation result the queue integration expects. The
// status code is always 200; failures travel in-band as the error count.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

var processor *relay.Processor

func handler(ctx context.Context, event events.SQSEvent) (Response, error) {
	envelopes := make([]relay.Envelope, 0, len(event.Records))
	for _, record := range event.Records {
		envelopes = append(envelopes, relay.Envelope{
			MessageID: record.MessageId,
			Body:      []byte(record.Body),
		})
	}

	result := processor.ProcessBatch(ctx, envelopes)

	body, err := json.Marshal(result)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: 200, Body: string(body)}, nil
}

func main() {
	util.InitializeLogger("production")
	defer util.Logger.Sync()

	var s3Conf s3util.Config
	if err := envconfig.Process("", &s3Conf); err != nil {
		log.Fatal("Failed to process S3 configurations", err)
	}

	client, err := s3util.NewClient(context.Background(), s3Conf)
	if err != nil {
		util.Logger.Fatal("Failed to initialize S3 client", zap.Error(err))
	}

	copier, err := s3util.NewCopier(client, s3Conf, util.Logger)
	if err != nil {
		util.Logger.Fatal("Failed to initialize copier", zap.Error(err))
	}

	processor = relay.NewProcessor(copier, util.Logger)

	lambda.Start(handler)
}
