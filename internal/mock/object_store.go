package mock

import (
	"context"
	"io"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// ObjectStore is a mock implementation of the ObjectStore interface.
type ObjectStore struct {
	PutFn func(ctx context.Context, grant gl.PresignGrant, body io.Reader, size int64) error
}

// Put proxies the request to the injected PutFn.
func (s *ObjectStore) Put(ctx context.Context, grant gl.PresignGrant, body io.Reader, size int64) error {
	return s.PutFn(ctx, grant, body, size)
}
