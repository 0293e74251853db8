package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// CreateAlbum creates the album on the backend and inserts the
// server-assigned record at the head of the album list. Creation is not
// optimistic: the identity comes from the server.
func (s *Session) CreateAlbum(ctx context.Context, req gl.CreateAlbumRequest) (gl.Album, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return gl.Album{}, errors.New("create album: title is required")
	}
	album, err := s.albums.CreateAlbum(ctx, req)
	if err != nil {
		return gl.Album{}, errors.Wrap(err, "create album")
	}
	s.albumList.Prepend(album)
	return album, nil
}

// PatchAlbum applies the change to the album-list entry and the open detail
// (when it is the same album) immediately, sends the patch, then merges the
// server's normalized record or restores both snapshots.
func (s *Session) PatchAlbum(ctx context.Context, albumID string, patch gl.AlbumPatch) (gl.Album, error) {
	if albumID == "" {
		return gl.Album{}, gl.ErrMissingAlbumContext
	}

	prevList, inList := s.albumList.Get(albumID)
	sel := s.selectedFor(albumID)
	var prevSel gl.Album
	if sel != nil {
		prevSel = sel.album
	}

	if inList {
		s.albumList.Replace(applyAlbumPatch(prevList, patch))
	}
	if sel != nil {
		s.setSelectedAlbum(albumID, applyAlbumPatch(prevSel, patch))
	}

	album, err := s.albums.PatchAlbum(ctx, albumID, patch)
	if err != nil {
		if inList {
			s.albumList.Replace(prevList)
		}
		if sel != nil {
			s.setSelectedAlbum(albumID, prevSel)
		}
		s.logger.Error("[PatchAlbum] patch rejected, snapshot restored",
			"album_id", albumID,
			"details", err.Error(),
		)
		return gl.Album{}, errors.Wrap(err, "patch album")
	}

	s.albumList.Replace(album)
	s.setSelectedAlbum(albumID, album)
	return album, nil
}

// SetCover makes the photo the album's cover via PatchAlbum.
func (s *Session) SetCover(ctx context.Context, albumID, photoID string) (gl.Album, error) {
	cover := null.StringFrom(photoID)
	return s.PatchAlbum(ctx, albumID, gl.AlbumPatch{CoverPhotoID: &cover})
}

// DeleteAlbum removes the album from the list (and closes it if open)
// before issuing the delete; a rejection restores the entry at its original
// index and reopens the selection.
func (s *Session) DeleteAlbum(ctx context.Context, albumID string) error {
	if albumID == "" {
		return gl.ErrMissingAlbumContext
	}

	removed, idx, inList := s.albumList.RemoveByKey(albumID)

	s.mu.Lock()
	prevSelected := s.selected
	if prevSelected != nil && prevSelected.album.ID == albumID {
		s.selGen++
		s.selected = nil
	} else {
		prevSelected = nil
	}
	s.mu.Unlock()

	if err := s.albums.DeleteAlbum(ctx, albumID); err != nil {
		if inList {
			s.albumList.InsertAt(idx, removed)
		}
		if prevSelected != nil {
			s.mu.Lock()
			s.selGen++
			s.selected = prevSelected
			s.mu.Unlock()
		}
		s.logger.Error("[DeleteAlbum] delete rejected, album restored",
			"album_id", albumID,
			"details", err.Error(),
		)
		return errors.Wrap(err, "delete album")
	}
	return nil
}

// AddPhotosToAlbum associates already-loaded library photos with the album.
// An empty selection is a no-op with no backend call. On success the picked
// photos are inserted at the front of the open detail sequence without a
// reload.
func (s *Session) AddPhotosToAlbum(ctx context.Context, albumID string, photoIDs []string) (int, error) {
	if albumID == "" {
		return 0, gl.ErrMissingAlbumContext
	}
	if len(photoIDs) == 0 {
		return 0, nil
	}

	added, err := s.albums.AddAlbumPhotos(ctx, albumID, photoIDs)
	if err != nil {
		return 0, errors.Wrap(err, "add photos to album")
	}

	if sel := s.selectedFor(albumID); sel != nil {
		picked := make([]gl.Photo, 0, len(photoIDs))
		for _, id := range photoIDs {
			if p, ok := s.photoList.Get(id); ok {
				picked = append(picked, p)
			}
		}
		sel.photos.PrependAll(picked)
	}
	return added, nil
}

// RemovePhotosFromAlbum filters the photos out of the open detail sequence
// immediately, then issues the removal; a rejection reinserts them at their
// original positions. The photos themselves are not deleted.
func (s *Session) RemovePhotosFromAlbum(ctx context.Context, albumID string, photoIDs []string) (int, error) {
	if albumID == "" {
		return 0, gl.ErrMissingAlbumContext
	}
	if len(photoIDs) == 0 {
		return 0, nil
	}

	type removal struct {
		photo gl.Photo
		index int
	}
	var undone []removal
	sel := s.selectedFor(albumID)
	if sel != nil {
		for _, id := range photoIDs {
			if p, idx, ok := sel.photos.RemoveByKey(id); ok {
				undone = append(undone, removal{photo: p, index: idx})
			}
		}
	}

	removed, err := s.albums.RemoveAlbumPhotos(ctx, albumID, photoIDs)
	if err != nil {
		for i := len(undone) - 1; i >= 0; i-- {
			sel.photos.InsertAt(undone[i].index, undone[i].photo)
		}
		s.logger.Error("[RemovePhotosFromAlbum] removal rejected, photos restored",
			"album_id", albumID,
			"details", err.Error(),
		)
		return 0, errors.Wrap(err, "remove photos from album")
	}
	return removed, nil
}

// setSelectedAlbum replaces the open album's metadata when it matches id.
func (s *Session) setSelectedAlbum(id string, album gl.Album) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.album.ID == id {
		s.selected.album = album
	}
}

func applyAlbumPatch(a gl.Album, patch gl.AlbumPatch) gl.Album {
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.CoverPhotoID != nil {
		a.CoverPhotoID = *patch.CoverPhotoID
	}
	return a
}
