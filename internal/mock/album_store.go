package mock

import (
	"context"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// AlbumStore is a mock implementation of the AlbumStore interface.
type AlbumStore struct {
	ListAlbumsFn        func(ctx context.Context, cursor string, limit int) (gl.AlbumPage, error)
	CreateAlbumFn       func(ctx context.Context, req gl.CreateAlbumRequest) (gl.Album, error)
	GetAlbumFn          func(ctx context.Context, id, cursor string, limit int) (gl.AlbumDetail, error)
	PatchAlbumFn        func(ctx context.Context, id string, patch gl.AlbumPatch) (gl.Album, error)
	DeleteAlbumFn       func(ctx context.Context, id string) error
	AddAlbumPhotosFn    func(ctx context.Context, id string, photoIDs []string) (int, error)
	RemoveAlbumPhotosFn func(ctx context.Context, id string, photoIDs []string) (int, error)
}

// ListAlbums proxies the request to the injected ListAlbumsFn.
func (s *AlbumStore) ListAlbums(ctx context.Context, cursor string, limit int) (gl.AlbumPage, error) {
	return s.ListAlbumsFn(ctx, cursor, limit)
}

// CreateAlbum proxies the request to the injected CreateAlbumFn.
func (s *AlbumStore) CreateAlbum(ctx context.Context, req gl.CreateAlbumRequest) (gl.Album, error) {
	return s.CreateAlbumFn(ctx, req)
}

// GetAlbum proxies the request to the injected GetAlbumFn.
func (s *AlbumStore) GetAlbum(ctx context.Context, id, cursor string, limit int) (gl.AlbumDetail, error) {
	return s.GetAlbumFn(ctx, id, cursor, limit)
}

// PatchAlbum proxies the request to the injected PatchAlbumFn.
func (s *AlbumStore) PatchAlbum(ctx context.Context, id string, patch gl.AlbumPatch) (gl.Album, error) {
	return s.PatchAlbumFn(ctx, id, patch)
}

// DeleteAlbum proxies the request to the injected DeleteAlbumFn.
func (s *AlbumStore) DeleteAlbum(ctx context.Context, id string) error {
	return s.DeleteAlbumFn(ctx, id)
}

// AddAlbumPhotos proxies the request to the injected AddAlbumPhotosFn.
func (s *AlbumStore) AddAlbumPhotos(ctx context.Context, id string, photoIDs []string) (int, error) {
	return s.AddAlbumPhotosFn(ctx, id, photoIDs)
}

// RemoveAlbumPhotos proxies the request to the injected RemoveAlbumPhotosFn.
func (s *AlbumStore) RemoveAlbumPhotos(ctx context.Context, id string, photoIDs []string) (int, error) {
	return s.RemoveAlbumPhotosFn(ctx, id, photoIDs)
}
