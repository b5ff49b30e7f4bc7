package kafkautil

// ConsumerConfig allows one to configure a Kafka consumer using
// environment variables.
type ConsumerConfig struct {
	GroupID string `envconfig:"group_id" required:"true"`
	Topic   string `required:"true"`
}

// AuthConfig allows one to configure auth with a plain SASL
// authentication mechanism to the Kafka brokers.
type AuthConfig struct {
	Brokers          []string          `required:"true"`
	Mechanism        string            `envconfig:"mechanism"`
	MechanismOptions map[string]string `envconfig:"mechanism_options"`
	Tls              bool              `envconfig:"tls"`
}
