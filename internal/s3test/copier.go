package s3test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gitdavehorsley/s3filereplicator/internal/relaymsgs"
	"github.com/gitdavehorsley/s3filereplicator/internal/s3util"
)

// MockObjectCopier is used to mock the object copier.
type MockObjectCopier struct {
	mock.Mock
}

func (c *MockObjectCopier) CopyObject(ctx context.Context, ref relaymsgs.ObjectReference) (s3util.Outcome, error) {
	args := c.Called(ctx, ref)
	return args.Get(0).(s3util.Outcome), args.Error(1)
}
