package testing

import (
	"context"
	"sync/atomic"

	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
)

// ClientFixture builds mock CloudSigma clients for common scenarios.
type ClientFixture struct{}

// NewClientFixture creates a new ClientFixture.
func NewClientFixture() *ClientFixture {
	return &ClientFixture{}
}

// Mock returns a mock client whose calls all succeed immediately.
func (f *ClientFixture) Mock() *cloudsigma.MockClient {
	return &cloudsigma.MockClient{}
}

// ServerStatuses returns a mock client whose server reports the given
// statuses in order, repeating the last one.
func (f *ClientFixture) ServerStatuses(statuses ...string) *cloudsigma.MockClient {
	m := f.Mock()
	m.GetServerFunc = Sequence(statuses, func(id, status string) (*cloudsigma.Server, error) {
		return &cloudsigma.Server{UUID: id, Status: status}, nil
	})
	return m
}

// DriveStatuses returns a mock client whose drive reports the given
// statuses in order, repeating the last one.
func (f *ClientFixture) DriveStatuses(statuses ...string) *cloudsigma.MockClient {
	m := f.Mock()
	m.GetDriveFunc = Sequence(statuses, func(id, status string) (*cloudsigma.Drive, error) {
		return &cloudsigma.Drive{UUID: id, Status: status}, nil
	})
	return m
}

// WithServerError returns a mock client whose server cannot be created.
func (f *ClientFixture) WithServerError(err error) *cloudsigma.MockClient {
	m := f.Mock()
	m.CreateServerFunc = func(context.Context, cloudsigma.ServerDescriptor) (string, error) {
		return "", err
	}
	return m
}

// Sequence returns a Get function that hands out statuses in order and
// repeats the last one. With no statuses every call gets "".
func Sequence[T any](statuses []string, build func(id, status string) (T, error)) func(context.Context, string) (T, error) {
	var n atomic.Int32
	return func(_ context.Context, id string) (T, error) {
		if len(statuses) == 0 {
			return build(id, "")
		}
		i := int(n.Add(1)) - 1
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		return build(id, statuses[i])
	}
}
