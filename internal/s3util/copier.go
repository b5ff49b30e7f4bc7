package s3util

import (
	"context"
	"errors"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/gitdavehorsley/s3filereplicator/internal/relaymsgs"
)

// CopyAPI is the subset of the S3 client the copier depends on.
type CopyAPI interface {
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

// Outcome reports how a copy attempt ended. A missing source object is a
// distinct outcome rather than an error: the relay deliberately treats it
// as non-fatal.
type Outcome int

const (
	OutcomeCopied Outcome = iota
	OutcomeNotFound
)

// ErrNoDestinationBucket is returned by NewCopier when the destination
// bucket has not been configured. This is a startup precondition, not a
// per-message failure.
var ErrNoDestinationBucket = errors.New("s3util: destination bucket is not configured")

// Copier issues server-side copies of source objects into the configured
// destination bucket. The destination key always equals the source key and
// metadata is copied verbatim.
type Copier struct {
	client            CopyAPI
	destinationBucket string
	log               *zap.Logger
}

func NewCopier(client CopyAPI, conf Config, log *zap.Logger) (*Copier, error) {
	if conf.DestinationBucket == "" {
		return nil, ErrNoDestinationBucket
	}

	return &Copier{
		client:            client,
		destinationBucket: conf.DestinationBucket,
		log:               log,
	}, nil
}

// CopyObject copies ref into the destination bucket. A NoSuchKey response
// from the backend maps to OutcomeNotFound with a nil error; every other
// failure is returned to the caller.
func (c *Copier) CopyObject(ctx context.Context, ref relaymsgs.ObjectReference) (Outcome, error) {
	copyLog := c.log.With(zap.String("sourceBucket", ref.Bucket),
		zap.String("key", ref.Key),
		zap.String("destinationBucket", c.destinationBucket))
	copyLog.Debug("Copying object")

	_, err := c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(c.destinationBucket),
		Key:               aws.String(ref.Key),
		CopySource:        aws.String(url.PathEscape(ref.Bucket + "/" + ref.Key)),
		MetadataDirective: types.MetadataDirectiveCopy,
	})
	if err != nil {
		if isNotFound(err) {
			copyLog.Warn("Source object not found, skipping")
			return OutcomeNotFound, nil
		}
		return OutcomeCopied, err
	}

	copyLog.Info("Copied object")
	return OutcomeCopied, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return code == "NoSuchKey" || code == "NotFound"
}
