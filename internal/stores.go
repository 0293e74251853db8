package internal

import (
	"context"
	"io"
	"time"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// PhotoStore is the backend surface for the photo library.
type PhotoStore interface {
	ListPhotos(ctx context.Context, cursor string, limit int) (gl.PhotoPage, error)
	PresignPhoto(ctx context.Context, filename, contentType string) (gl.PresignGrant, error)
	ConfirmPhoto(ctx context.Context, req gl.ConfirmRequest) (gl.Photo, error)
	PhotoURL(ctx context.Context, id string, ttl time.Duration) (gl.SignedURL, error)
	PatchPhoto(ctx context.Context, id string, patch gl.PhotoPatch) (gl.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
}

// AlbumStore is the backend surface for albums and their memberships.
type AlbumStore interface {
	ListAlbums(ctx context.Context, cursor string, limit int) (gl.AlbumPage, error)
	CreateAlbum(ctx context.Context, req gl.CreateAlbumRequest) (gl.Album, error)
	GetAlbum(ctx context.Context, id, cursor string, limit int) (gl.AlbumDetail, error)
	PatchAlbum(ctx context.Context, id string, patch gl.AlbumPatch) (gl.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	AddAlbumPhotos(ctx context.Context, id string, photoIDs []string) (int, error)
	RemoveAlbumPhotos(ctx context.Context, id string, photoIDs []string) (int, error)
}

// ObjectStore performs the opaque storage write of raw bytes against a
// presign grant.
type ObjectStore interface {
	Put(ctx context.Context, grant gl.PresignGrant, body io.Reader, size int64) error
}
