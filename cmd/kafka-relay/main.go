package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/gitdavehorsley/s3filereplicator/internal/config"
	"github.com/gitdavehorsley/s3filereplicator/internal/kafkautil"
	"github.com/gitdavehorsley/s3filereplicator/internal/relay"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3util"
	"github.com/gitdavehorsley/s3filereplicator/internal/util"
)

// Alternate front-end for deployments that deliver bucket notifications
// over Kafka instead of SQS. Each fetched message is processed as a
// single-envelope batch and its offset committed unconditionally: a bad
// message must never block the partition.
func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Unable to load app config", err)
	}
	util.InitializeLogger(conf.Environment)
	defer util.Logger.Sync()

	var authConfig kafkautil.AuthConfig
	if err := envconfig.Process("S3R_KAFKA_AUTH", &authConfig); err != nil {
		util.Logger.Fatal("Failed to process auth configurations", zap.Error(err))
	}

	var consumerConfig kafkautil.ConsumerConfig
	if err := envconfig.Process("S3R_KAFKA_CONSUMER", &consumerConfig); err != nil {
		util.Logger.Fatal("Failed to process consumer configurations", zap.Error(err))
	}

	var s3Conf s3util.Config
	if err := envconfig.Process("", &s3Conf); err != nil {
		util.Logger.Fatal("Failed to process S3 configurations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s3Client, err := s3util.NewClient(ctx, s3Conf)
	if err != nil {
		util.Logger.Fatal("Failed to initialize S3 client", zap.Error(err))
	}
	copier, err := s3util.NewCopier(s3Client, s3Conf, util.Logger)
	if err != nil {
		util.Logger.Fatal("Failed to initialize copier", zap.Error(err))
	}
	processor := relay.NewProcessor(copier, util.Logger)

	dialer, err := kafkautil.NewDialer(authConfig)
	if err != nil {
		util.Logger.Fatal("Failed to configure dialer", zap.Error(err))
	}
	consumer := kafkautil.NewConsumer(consumerConfig, authConfig, dialer)
	var cleanupOnce sync.Once
	cleanup := func() {
		util.Logger.Debug("Closing Kafka consumer")
		if err := consumer.Close(); err != nil {
			util.Logger.Fatal("Failed to close Kafka consumer", zap.Error(err))
		}
		util.Logger.Debug("Kafka consumer has been closed")
	}
	defer cleanupOnce.Do(cleanup)

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err == io.EOF {
			util.Logger.Info("Connection closed")
			break
		} else if err == context.Canceled {
			util.Logger.Info("Processing canceled")
			break
		} else if kafkautil.IsTemporaryError(err) || kafkautil.IsTransientNetworkError(err) {
			util.Logger.Warn("Transient error fetching message", zap.Error(err))
			continue
		} else if err != nil {
			util.Logger.Error("Error fetching message", zap.Error(err))
			break
		}

		msgLog := util.Logger.With(zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset))
		msgLog.Debug("Message fetched")

		result := processor.ProcessBatch(ctx, []relay.Envelope{{
			MessageID: fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset),
			Body:      msg.Value,
		}})
		msgLog.Debug("Message processed",
			zap.Int("successCount", result.SuccessCount),
			zap.Int("errorCount", result.ErrorCount))

		if err := consumer.CommitMessages(ctx, msg); err != nil {
			msgLog.Error("Unable to update commit for consumer group", zap.Error(err))
		}
	}
}
