package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gitdavehorsley/s3filereplicator/internal/config"
	"github.com/gitdavehorsley/s3filereplicator/internal/relay"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3util"
	"github.com/gitdavehorsley/s3filereplicator/internal/sqsutil"
	"github.com/gitdavehorsley/s3filereplicator/internal/util"
)

func metricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// main
// Sets up:
// - Prometheus metrics and health endpoints
// - Graceful shutdown via Context
// - The SQS receive/process/delete loop
func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Unable to load app config", err)
	}
	util.InitializeLogger(conf.Environment)
	defer util.Logger.Sync()

	var s3Conf s3util.Config
	if err := envconfig.Process("", &s3Conf); err != nil {
		util.Logger.Fatal("Failed to process S3 configurations", zap.Error(err))
	}

	var consumerConf sqsutil.ConsumerConfig
	if err := envconfig.Process("S3R_SQS", &consumerConf); err != nil {
		util.Logger.Fatal("Failed to process consumer configurations", zap.Error(err))
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

	sqsClient, err := sqsutil.NewClient(ctx, s3Conf.Region)
	if err != nil {
		util.Logger.Fatal("Failed to initialize SQS client", zap.Error(err))
	}
	consumer := sqsutil.NewConsumer(sqsClient, consumerConf)

	processor := relay.NewProcessor(copier, util.Logger)

	router := gin.Default()
	router.GET("/metrics", metricsHandler())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	srv := &http.Server{
		Addr:    conf.Metrics.Address,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("Metrics server failed", zap.Error(err))
		}
	}()

	for ctx.Err() == nil {
		var messages []sqsutil.Message
		receive := func() error {
			var rerr error
			messages, rerr = consumer.ReceiveMessages(ctx)
			return rerr
		}
		err := backoff.RetryNotify(receive, backoff.WithContext(backoff.NewExponentialBackOff(), ctx),
			func(err error, d time.Duration) {
				util.Logger.Warn("Failed to receive messages, backing off",
					zap.Duration("backoff", d), zap.Error(err))
			})
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			util.Logger.Error("Giving up receiving messages", zap.Error(err))
			continue
		}
		if len(messages) == 0 {
			continue
		}

		envelopes := make([]relay.Envelope, 0, len(messages))
		for _, msg := range messages {
			envelopes = append(envelopes, relay.Envelope{
				MessageID: msg.MessageID,
				Body:      []byte(msg.Body),
			})
		}

		processor.ProcessBatch(ctx, envelopes)

		// The batch never fails as a whole, so every received message is
		// acknowledged. Failures are visible through the counters only.
		for _, msg := range messages {
			if err := consumer.DeleteMessage(ctx, msg.ReceiptHandle); err != nil {
				util.Logger.Error("Failed to delete message",
					zap.String("messageId", msg.MessageID), zap.Error(err))
			}
		}
	}

	util.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Error("Metrics server shutdown failed", zap.Error(err))
	}
}
