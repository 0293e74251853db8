package session

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// UploadRequest describes one photo upload.
type UploadRequest struct {
	Filename    string
	ContentType string
	Title       string
	Description string
	Size        int64
	Body        io.Reader
}

// Upload runs the three-phase upload protocol: presign, storage PUT,
// confirm. The new photo is inserted at the head of the photo list as soon
// as the backend confirms it, so a failed follow-up description patch leaves
// the confirmed record visible locally. A confirm failure after a successful
// PUT is reported as gallery.PartialUploadError; the orphaned object is left
// for the backend to reap.
func (s *Session) Upload(ctx context.Context, req UploadRequest) (gl.Photo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.Filename
	}

	grant, err := s.photos.PresignPhoto(ctx, req.Filename, req.ContentType)
	if err != nil {
		return gl.Photo{}, errors.Wrap(err, "upload: presign")
	}

	if err := s.objects.Put(ctx, grant, req.Body, req.Size); err != nil {
		return gl.Photo{}, errors.Wrap(err, "upload: store bytes")
	}

	photo, err := s.photos.ConfirmPhoto(ctx, gl.ConfirmRequest{
		Key:         grant.Key,
		Bytes:       req.Size,
		ContentType: req.ContentType,
		Title:       title,
	})
	if err != nil {
		s.logger.Error("[Upload] stored object not confirmed",
			"key", grant.Key,
			"details", err.Error(),
		)
		return gl.Photo{}, &gl.PartialUploadError{Key: grant.Key, Err: err}
	}

	s.photoList.Prepend(photo)

	if desc := strings.TrimSpace(req.Description); desc != "" {
		patched, err := s.photos.PatchPhoto(ctx, photo.ID, gl.PhotoPatch{Description: &desc})
		if err != nil {
			s.logger.Warn("[Upload] description not applied",
				"photo_id", photo.ID,
				"details", err.Error(),
			)
			return gl.Photo{}, errors.Wrap(err, "upload: set description")
		}
		photo = patched
		s.photoList.Prepend(photo)
	}

	return photo, nil
}

// PatchPhoto applies the metadata change locally right away, then sends the
// patch. The server's normalized record replaces the optimistic one on
// success; on failure the pre-mutation snapshot is restored and the error
// surfaced.
func (s *Session) PatchPhoto(ctx context.Context, id string, patch gl.PhotoPatch) (gl.Photo, error) {
	prev, inList := s.photoList.Get(id)
	var prevDetail gl.Photo
	var inDetail bool
	sel := s.currentSelection()
	if sel != nil {
		prevDetail, inDetail = sel.photos.Get(id)
	}

	if inList {
		s.photoList.Replace(applyPhotoPatch(prev, patch))
	}
	if inDetail {
		sel.photos.Replace(applyPhotoPatch(prevDetail, patch))
	}

	photo, err := s.photos.PatchPhoto(ctx, id, patch)
	if err != nil {
		if inList {
			s.photoList.Replace(prev)
		}
		if inDetail {
			sel.photos.Replace(prevDetail)
		}
		s.logger.Error("[PatchPhoto] patch rejected, snapshot restored",
			"photo_id", id,
			"details", err.Error(),
		)
		return gl.Photo{}, errors.Wrap(err, "patch photo")
	}

	s.photoList.Replace(photo)
	if inDetail {
		sel.photos.Replace(photo)
	}
	return photo, nil
}

// DeletePhoto removes the photo locally first, then issues the delete. On
// failure the photo reappears at its original index in every collection it
// was removed from. An album cover pointing at the deleted photo is left as
// a dangling weak reference.
func (s *Session) DeletePhoto(ctx context.Context, id string) error {
	removed, idx, inList := s.photoList.RemoveByKey(id)
	var removedDetail gl.Photo
	var detailIdx int
	var inDetail bool
	sel := s.currentSelection()
	if sel != nil {
		removedDetail, detailIdx, inDetail = sel.photos.RemoveByKey(id)
	}

	if err := s.photos.DeletePhoto(ctx, id); err != nil {
		if inList {
			s.photoList.InsertAt(idx, removed)
		}
		if inDetail {
			sel.photos.InsertAt(detailIdx, removedDetail)
		}
		s.logger.Error("[DeletePhoto] delete rejected, item restored",
			"photo_id", id,
			"details", err.Error(),
		)
		return errors.Wrap(err, "delete photo")
	}

	if s.urls != nil {
		s.urls.Forget(id)
	}
	return nil
}

func (s *Session) currentSelection() *openAlbum {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func applyPhotoPatch(p gl.Photo, patch gl.PhotoPatch) gl.Photo {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	return p
}
