package mock

import (
	"context"
	"time"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// PhotoStore is a mock implementation of the PhotoStore interface.
type PhotoStore struct {
	ListPhotosFn   func(ctx context.Context, cursor string, limit int) (gl.PhotoPage, error)
	PresignPhotoFn func(ctx context.Context, filename, contentType string) (gl.PresignGrant, error)
	ConfirmPhotoFn func(ctx context.Context, req gl.ConfirmRequest) (gl.Photo, error)
	PhotoURLFn     func(ctx context.Context, id string, ttl time.Duration) (gl.SignedURL, error)
	PatchPhotoFn   func(ctx context.Context, id string, patch gl.PhotoPatch) (gl.Photo, error)
	DeletePhotoFn  func(ctx context.Context, id string) error
}

// ListPhotos proxies the request to the ListPhotosFn that's injected when
// the mock store is created.
func (s *PhotoStore) ListPhotos(ctx context.Context, cursor string, limit int) (gl.PhotoPage, error) {
	return s.ListPhotosFn(ctx, cursor, limit)
}

// PresignPhoto proxies the request to the injected PresignPhotoFn.
func (s *PhotoStore) PresignPhoto(ctx context.Context, filename, contentType string) (gl.PresignGrant, error) {
	return s.PresignPhotoFn(ctx, filename, contentType)
}

// ConfirmPhoto proxies the request to the injected ConfirmPhotoFn.
func (s *PhotoStore) ConfirmPhoto(ctx context.Context, req gl.ConfirmRequest) (gl.Photo, error) {
	return s.ConfirmPhotoFn(ctx, req)
}

// PhotoURL proxies the request to the injected PhotoURLFn.
func (s *PhotoStore) PhotoURL(ctx context.Context, id string, ttl time.Duration) (gl.SignedURL, error) {
	return s.PhotoURLFn(ctx, id, ttl)
}

// PatchPhoto proxies the request to the injected PatchPhotoFn.
func (s *PhotoStore) PatchPhoto(ctx context.Context, id string, patch gl.PhotoPatch) (gl.Photo, error) {
	return s.PatchPhotoFn(ctx, id, patch)
}

// DeletePhoto proxies the request to the injected DeletePhotoFn.
func (s *PhotoStore) DeletePhoto(ctx context.Context, id string) error {
	return s.DeletePhotoFn(ctx, id)
}
