// Package storage performs the opaque write of raw photo bytes to a
// presigned object-storage URL.
package storage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// Uploader PUTs photo bytes against a presign grant.
type Uploader struct {
	client *http.Client
}

// New creates an Uploader. A nil client defaults to one with a timeout
// sized for large uploads.
func New(client *http.Client) *Uploader {
	if client == nil {
		client = httputils.NewClient(httputils.WithTimeout(60 * time.Second))
	}
	return &Uploader{client: client}
}

// Put streams body to the grant's URL with the grant's headers. Success is
// any 2xx response; everything else fails the upload.
func (u *Uploader) Put(ctx context.Context, grant gl.PresignGrant, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, grant.URL, body)
	if err != nil {
		return errors.Wrap(err, "create storage request")
	}
	req.ContentLength = size
	for k, v := range grant.Headers {
		req.Header.Set(k, v)
	}

	res, err := u.client.Do(req)
	if err != nil {
		return &gl.NetworkError{Op: "PUT " + grant.Key, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &gl.BackendError{Status: res.StatusCode, Message: "storage rejected upload"}
	}
	return nil
}
