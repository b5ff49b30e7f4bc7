package relay

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitdavehorsley/s3filereplicator/internal/relaymsgs"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3util"
)

// Envelope is one queued message unit: an opaque body to parse plus an
// identifier for logging.
type Envelope struct {
	MessageID string
	Body      []byte
}

// Result aggregates the outcome of one batch. The queue is never told
// which envelopes failed, only the totals.
type Result struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}

// ObjectCopier copies one source object into the destination bucket. The
// production implementation is s3util.Copier; tests substitute a mock.
type ObjectCopier interface {
	CopyObject(ctx context.Context, ref relaymsgs.ObjectReference) (s3util.Outcome, error)
}

// Processor relays a batch of envelopes, one at a time and in order. An
// envelope that cannot be parsed, or a copy that fails, is counted and
// logged; it never stops the rest of the batch.
type Processor struct {
	copier ObjectCopier
	log    *zap.Logger
}

func NewProcessor(copier ObjectCopier, log *zap.Logger) *Processor {
	return &Processor{
		copier: copier,
		log:    log,
	}
}

// ProcessBatch resolves every object reference in the batch and attempts a
// copy for each. It always returns a Result, regardless of how many
// envelopes failed.
func (p *Processor) ProcessBatch(ctx context.Context, envelopes []Envelope) Result {
	p.log.Info("Processing batch", zap.Int("envelopes", len(envelopes)))

	var result Result
	for _, envelope := range envelopes {
		envelopesProcessed.Inc()
		msgLog := p.log.With(zap.String("messageId", envelope.MessageID))

		decoded, err := relaymsgs.Decode(envelope.Body)
		if err != nil {
			msgLog.Error("Unable to decode message body", zap.Error(err))
			result.ErrorCount++
			continue
		}

		switch decoded.Shape {
		case relaymsgs.ShapeNotification:
			for _, record := range decoded.Notification.Records {
				if record.EventSource != relaymsgs.EventSourceS3 {
					msgLog.Debug("Skipping record from other event source",
						zap.String("eventSource", record.EventSource))
					continue
				}
				p.copyAndCount(ctx, msgLog, record.Reference(), &result)
			}
		case relaymsgs.ShapeDirect:
			ref := decoded.Direct.Reference()
			if !ref.Complete() {
				msgLog.Warn("Message is missing a bucket name or object key",
					zap.String("bucket", ref.Bucket),
					zap.String("key", ref.Key))
				result.ErrorCount++
				continue
			}
			p.copyAndCount(ctx, msgLog, ref, &result)
		}
	}

	p.log.Info("Batch complete",
		zap.Int("successCount", result.SuccessCount),
		zap.Int("errorCount", result.ErrorCount))
	return result
}

// copyAndCount attempts one copy and counts it. A missing source object
// still counts as a success: no error propagated, nothing to retry.
func (p *Processor) copyAndCount(ctx context.Context, msgLog *zap.Logger, ref relaymsgs.ObjectReference, result *Result) {
	outcome, err := p.copier.CopyObject(ctx, ref)
	if err != nil {
		msgLog.Error("Failed to copy object",
			zap.String("bucket", ref.Bucket),
			zap.String("key", ref.Key),
			zap.Error(err))
		copiesFailed.Inc()
		result.ErrorCount++
		return
	}

	if outcome == s3util.OutcomeNotFound {
		objectsMissing.Inc()
	} else {
		copiesSucceeded.Inc()
	}
	result.SuccessCount++
}
