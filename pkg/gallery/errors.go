package gallery

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("not found")

// ErrMissingAlbumContext is returned by album mutations invoked without a
// resolvable target album. It is a contract violation in the caller, not a
// transient condition.
var ErrMissingAlbumContext = errors.New("album mutation requires an album id")

// NetworkError wraps a request that never completed.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %s", e.Op, e.Err.Error())
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError is a non-success response from the backend.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}

// IsAuthorizationExpired reports whether the error is a backend rejection of
// a signed URL that should be treated as immediate expiry.
func IsAuthorizationExpired(err error) bool {
	var be *BackendError
	if !errors.As(err, &be) {
		return false
	}
	return be.Status == http.StatusUnauthorized || be.Status == http.StatusForbidden
}

// PartialUploadError reports an upload whose storage write succeeded but
// whose confirmation failed, leaving an orphaned object under Key.
type PartialUploadError struct {
	Key string
	Err error
}

func (e *PartialUploadError) Error() string {
	return fmt.Sprintf("upload stored object %q but confirmation failed: %s", e.Key, e.Err.Error())
}

func (e *PartialUploadError) Unwrap() error { return e.Err }
