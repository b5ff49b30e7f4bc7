package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/gitdavehorsley/s3filereplicator/internal/relaymsgs"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3test"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3util"
)

type testProcessorContext struct {
	ctx        context.Context
	mockCopier *s3test.MockObjectCopier
	processor  *Processor
}

func newTestProcessorContext() *testProcessorContext {
	mockCopier := new(s3test.MockObjectCopier)
	return &testProcessorContext{
		ctx:        context.Background(),
		mockCopier: mockCopier,
		processor:  NewProcessor(mockCopier, zap.NewNop()),
	}
}

const (
	testNotificationThreeRecords = `
{
  "Records": [
    {"eventSource": "aws:s3", "s3": {"bucket": {"name": "uploads"}, "object": {"key": "folder/a.txt"}}},
    {"eventSource": "aws:s3", "s3": {"bucket": {"name": "uploads"}, "object": {"key": "folder/b.txt"}}},
    {"eventSource": "aws:s3", "s3": {"bucket": {"name": "uploads"}, "object": {"key": "folder/c.txt"}}}
  ]
}
`
	testNotificationOtherSource = `
{
  "Records": [
    {"eventSource": "aws:sns", "s3": {"bucket": {"name": "uploads"}, "object": {"key": "folder/a.txt"}}}
  ]
}
`
	testDirectReference           = `{"bucket": {"name": "uploads"}, "object": {"key": "folder/a.txt"}}`
	testDirectReferenceMissingKey = `{"bucket": {"name": "uploads"}, "object": {}}`
)

func TestProcessBatchNotification(t *testing.T) {
	tc := newTestProcessorContext()

	for _, key := range []string{"folder/a.txt", "folder/b.txt", "folder/c.txt"} {
		tc.mockCopier.
			On("CopyObject", mock.Anything, relaymsgs.ObjectReference{Bucket: "uploads", Key: key}).
			Once().
			Return(s3util.OutcomeCopied, nil)
	}

	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte(testNotificationThreeRecords)},
	})

	tc.mockCopier.AssertExpectations(t)
	tc.mockCopier.AssertNumberOfCalls(t, "CopyObject", 3)
	assert.Equal(t, Result{SuccessCount: 3, ErrorCount: 0}, result)
}

func TestProcessBatchSkipsOtherEventSources(t *testing.T) {
	tc := newTestProcessorContext()

	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte(testNotificationOtherSource)},
	})

	// Neither a success nor an error, and no copy attempted
	tc.mockCopier.AssertNumberOfCalls(t, "CopyObject", 0)
	assert.Equal(t, Result{SuccessCount: 0, ErrorCount: 0}, result)
}

func TestProcessBatchDirectReference(t *testing.T) {
	tc := newTestProcessorContext()

	// The destination key must equal the source key, never renamed
	tc.mockCopier.
		On("CopyObject", mock.Anything, relaymsgs.ObjectReference{Bucket: "uploads", Key: "folder/a.txt"}).
		Once().
		Return(s3util.OutcomeCopied, nil)

	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte(testDirectReference)},
	})

	tc.mockCopier.AssertExpectations(t)
	assert.Equal(t, Result{SuccessCount: 1, ErrorCount: 0}, result)
}

func TestProcessBatchDirectReferenceMissingKey(t *testing.T) {
	tc := newTestProcessorContext()

	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte(testDirectReferenceMissingKey)},
	})

	tc.mockCopier.AssertNumberOfCalls(t, "CopyObject", 0)
	assert.Equal(t, Result{SuccessCount: 0, ErrorCount: 1}, result)
}

func TestProcessBatchMissingSourceObjectCountsAsSuccess(t *testing.T) {
	tc := newTestProcessorContext()

	tc.mockCopier.
		On("CopyObject", mock.Anything, mock.Anything).
		Once().
		Return(s3util.OutcomeNotFound, nil)

	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte(testDirectReference)},
	})

	tc.mockCopier.AssertExpectations(t)
	assert.Equal(t, Result{SuccessCount: 1, ErrorCount: 0}, result)
}

func TestProcessBatchCopyFailureCountsAsError(t *testing.T) {
	tc := newTestProcessorContext()

	tc.mockCopier.
		On("CopyObject", mock.Anything, relaymsgs.ObjectReference{Bucket: "uploads", Key: "folder/a.txt"}).
		Once().
		Return(s3util.OutcomeCopied, errors.New("access denied"))
	tc.mockCopier.
		On("CopyObject", mock.Anything, relaymsgs.ObjectReference{Bucket: "uploads", Key: "folder/b.txt"}).
		Once().
		Return(s3util.OutcomeCopied, nil)
	tc.mockCopier.
		On("CopyObject", mock.Anything, relaymsgs.ObjectReference{Bucket: "uploads", Key: "folder/c.txt"}).
		Once().
		Return(s3util.OutcomeCopied, nil)

	// A failing record does not stop the remaining records of the wrapper
	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte(testNotificationThreeRecords)},
	})

	tc.mockCopier.AssertExpectations(t)
	assert.Equal(t, Result{SuccessCount: 2, ErrorCount: 1}, result)
}

func TestProcessBatchMalformedBodyIsolation(t *testing.T) {
	tc := newTestProcessorContext()

	tc.mockCopier.
		On("CopyObject", mock.Anything, relaymsgs.ObjectReference{Bucket: "uploads", Key: "folder/a.txt"}).
		Once().
		Return(s3util.OutcomeCopied, nil)

	// The malformed envelope is counted and the rest of the batch still runs
	result := tc.processor.ProcessBatch(tc.ctx, []Envelope{
		{MessageID: "m-1", Body: []byte("this is not json")},
		{MessageID: "m-2", Body: []byte(testDirectReference)},
	})

	tc.mockCopier.AssertExpectations(t)
	assert.Equal(t, Result{SuccessCount: 1, ErrorCount: 1}, result)
}

func TestProcessBatchEmpty(t *testing.T) {
	tc := newTestProcessorContext()

	result := tc.processor.ProcessBatch(tc.ctx, nil)

	tc.mockCopier.AssertNumberOfCalls(t, "CopyObject", 0)
	assert.Equal(t, Result{}, result)
}
