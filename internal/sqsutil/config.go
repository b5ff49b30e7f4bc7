package sqsutil

// ConsumerConfig allows one to configure the SQS consumer using
// environment variables. The defaults favour long polling.
type ConsumerConfig struct {
	QueueURL          string `envconfig:"queue_url" required:"true"`
	MaxMessages       int32  `envconfig:"max_messages" default:"10"`
	WaitTimeSeconds   int32  `envconfig:"wait_time_seconds" default:"20"`
	VisibilityTimeout int32  `envconfig:"visibility_timeout" default:"30"`
}
