package kafkautil

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// NewDialer configures a connection dialer from the auth configuration.
// TLS 1.2 is the floor when TLS is enabled; PLAIN is the only supported
// SASL mechanism.
func NewDialer(authConfig AuthConfig) (*kafka.Dialer, error) {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	if authConfig.Tls {
		dialer.TLS = &tls.Config{
			MinVersion: tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{
				tls.CurveP521,
				tls.CurveP384,
				tls.CurveP256,
			},
		}
	}

	switch authConfig.Mechanism {
	case "":
		// no auth
	case "plain":
		dialer.SASLMechanism = plain.Mechanism{
			Username: authConfig.MechanismOptions["username"],
			Password: authConfig.MechanismOptions["password"],
		}
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %q", authConfig.Mechanism)
	}

	return dialer, nil
}

// NewConsumer builds a reader for the configured topic and consumer group.
func NewConsumer(config ConsumerConfig, authConfig AuthConfig, dialer *kafka.Dialer) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: authConfig.Brokers,
		GroupID: config.GroupID,
		Topic:   config.Topic,
		Dialer:  dialer,
	})
}
