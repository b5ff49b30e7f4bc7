package s3util

// Config configures the S3 client and the copy destination using
// environment variables. DESTINATION_BUCKET is the one required setting;
// the region is normally resolved by the SDK's default chain.
type Config struct {
	DestinationBucket string `envconfig:"destination_bucket" required:"true"`
	Region            string `envconfig:"aws_region"`
}
