// Package session holds the in-memory state of one browsing session: the
// photo list, the album list, and the currently open album. It applies
// mutations optimistically and reconciles them with the backend, rolling
// local state back when the backend refuses.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"

	"github.com/AJMerr/little-moments-client/internal"
	"github.com/AJMerr/little-moments-client/internal/collection"
	"github.com/AJMerr/little-moments-client/internal/urlcache"
	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// DefaultPageSize matches the page size the backend UI requests.
const DefaultPageSize = 24

// Config contains the dependencies for a Session.
type Config struct {
	Photos   internal.PhotoStore
	Albums   internal.AlbumStore
	Objects  internal.ObjectStore
	URLs     *urlcache.Cache
	Logger   tools.Logger
	PageSize int
}

// Session is the single owner of the three loosely coupled collections.
// External code reads its state through accessors and mutates it only
// through its methods.
type Session struct {
	photos   internal.PhotoStore
	albums   internal.AlbumStore
	objects  internal.ObjectStore
	urls     *urlcache.Cache
	logger   tools.Logger
	pageSize int

	photoList *collection.Controller[gl.Photo]
	albumList *collection.Controller[gl.Album]

	mu       sync.Mutex
	selected *openAlbum
	selGen   int
}

// openAlbum is the detail view over one album's membership.
type openAlbum struct {
	album  gl.Album
	photos *collection.Controller[gl.Photo]
}

// AlbumView is a read-only copy of the open album's state.
type AlbumView struct {
	Album   gl.Album
	Photos  []gl.Photo
	HasMore bool
}

func photoKey(p gl.Photo) string { return p.ID }
func albumKey(a gl.Album) string { return a.ID }

// New creates a Session.
func New(c Config) (*Session, error) {
	if c.Photos == nil || c.Albums == nil || c.Objects == nil {
		return nil, errors.New("session: photo, album and object stores are required")
	}
	if c.Logger == nil {
		return nil, errors.New("session: logger is required")
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	s := &Session{
		photos:   c.Photos,
		albums:   c.Albums,
		objects:  c.Objects,
		urls:     c.URLs,
		logger:   c.Logger,
		pageSize: c.PageSize,
	}
	s.photoList = collection.New(s.loadPhotoPage, photoKey)
	s.albumList = collection.New(s.loadAlbumPage, albumKey)
	return s, nil
}

func (s *Session) loadPhotoPage(ctx context.Context, cursor string, limit int) ([]gl.Photo, string, error) {
	page, err := s.photos.ListPhotos(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}
	return page.Items, page.NextCursor, nil
}

func (s *Session) loadAlbumPage(ctx context.Context, cursor string, limit int) ([]gl.Album, string, error) {
	page, err := s.albums.ListAlbums(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}
	return page.Items, page.NextCursor, nil
}

// LoadPhotos replaces the photo list with its first page.
func (s *Session) LoadPhotos(ctx context.Context) error {
	return s.photoList.LoadFirst(ctx, s.pageSize)
}

// LoadMorePhotos appends the photo list's next page.
func (s *Session) LoadMorePhotos(ctx context.Context) error {
	return s.photoList.LoadMore(ctx)
}

// LoadAlbums replaces the album list with its first page.
func (s *Session) LoadAlbums(ctx context.Context) error {
	return s.albumList.LoadFirst(ctx, s.pageSize)
}

// LoadMoreAlbums appends the album list's next page.
func (s *Session) LoadMoreAlbums(ctx context.Context) error {
	return s.albumList.LoadMore(ctx)
}

// Photos returns the loaded prefix of the photo library.
func (s *Session) Photos() []gl.Photo { return s.photoList.Items() }

// MorePhotos reports whether the photo list has unloaded pages.
func (s *Session) MorePhotos() bool { return s.photoList.Cursor() != "" }

// Albums returns the loaded prefix of the album list.
func (s *Session) Albums() []gl.Album { return s.albumList.Items() }

// MoreAlbums reports whether the album list has unloaded pages.
func (s *Session) MoreAlbums() bool { return s.albumList.Cursor() != "" }

// URLs returns the session's signed URL cache, nil when none was configured.
func (s *Session) URLs() *urlcache.Cache { return s.urls }

// OpenAlbum loads the album detail and makes it the current selection. When
// a second selection change starts before this one resolves, the slower
// response is returned to its caller but does not overwrite the newer
// selection.
func (s *Session) OpenAlbum(ctx context.Context, id string) (AlbumView, error) {
	if id == "" {
		return AlbumView{}, gl.ErrMissingAlbumContext
	}

	s.mu.Lock()
	s.selGen++
	gen := s.selGen
	s.mu.Unlock()

	detail, err := s.albums.GetAlbum(ctx, id, "", s.pageSize)
	if err != nil {
		return AlbumView{}, errors.Wrap(err, "open album")
	}

	ctrl := collection.New(func(ctx context.Context, cursor string, limit int) ([]gl.Photo, string, error) {
		d, err := s.albums.GetAlbum(ctx, id, cursor, limit)
		if err != nil {
			return nil, "", err
		}
		return d.Photos, d.NextCursor, nil
	}, photoKey)
	ctrl.Seed(detail.Photos, detail.NextCursor, s.pageSize)

	s.mu.Lock()
	if gen != s.selGen {
		s.mu.Unlock()
		return AlbumView{
			Album:   detail.Album,
			Photos:  ctrl.Items(),
			HasMore: ctrl.Cursor() != "",
		}, nil
	}
	s.selected = &openAlbum{album: detail.Album, photos: ctrl}
	s.mu.Unlock()
	return s.selectedView()
}

// CloseAlbum drops the current selection.
func (s *Session) CloseAlbum() {
	s.mu.Lock()
	s.selGen++
	s.selected = nil
	s.mu.Unlock()
}

// SelectedAlbum returns a copy of the open album's state.
func (s *Session) SelectedAlbum() (AlbumView, bool) {
	v, err := s.selectedView()
	return v, err == nil
}

// LoadMoreAlbumPhotos appends the next page of the open album's photos.
func (s *Session) LoadMoreAlbumPhotos(ctx context.Context) error {
	s.mu.Lock()
	sel := s.selected
	s.mu.Unlock()
	if sel == nil {
		return gl.ErrMissingAlbumContext
	}
	return sel.photos.LoadMore(ctx)
}

// Reset discards all session state, including any pending URL renewals.
func (s *Session) Reset() {
	s.mu.Lock()
	s.selGen++
	s.selected = nil
	s.mu.Unlock()
	s.photoList.Reset()
	s.albumList.Reset()
	if s.urls != nil {
		s.urls.Reset()
	}
}

func (s *Session) selectedView() (AlbumView, error) {
	s.mu.Lock()
	sel := s.selected
	s.mu.Unlock()
	if sel == nil {
		return AlbumView{}, gl.ErrMissingAlbumContext
	}
	return AlbumView{
		Album:   sel.album,
		Photos:  sel.photos.Items(),
		HasMore: sel.photos.Cursor() != "",
	}, nil
}

// selectedFor returns the open album state when it matches id.
func (s *Session) selectedFor(id string) *openAlbum {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil || s.selected.album.ID != id {
		return nil
	}
	return s.selected
}
