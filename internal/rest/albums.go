package rest

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// ListAlbums returns one page of the album list.
func (c *Client) ListAlbums(ctx context.Context, cursor string, limit int) (gl.AlbumPage, error) {
	var page gl.AlbumPage
	err := c.do(ctx, http.MethodGet, "/albums", pageQuery(cursor, limit), nil, &page)
	if err != nil {
		return gl.AlbumPage{}, errors.Wrap(err, "list albums")
	}
	return page, nil
}

// CreateAlbum creates an album, optionally with an initial photo set.
func (c *Client) CreateAlbum(ctx context.Context, req gl.CreateAlbumRequest) (gl.Album, error) {
	var album gl.Album
	err := c.do(ctx, http.MethodPost, "/albums", nil, req, &album)
	if err != nil {
		return gl.Album{}, errors.Wrap(err, "create album")
	}
	return album, nil
}

// GetAlbum returns the album plus one page of its member photos.
func (c *Client) GetAlbum(ctx context.Context, id, cursor string, limit int) (gl.AlbumDetail, error) {
	var detail gl.AlbumDetail
	err := c.do(ctx, http.MethodGet, "/albums/"+id, pageQuery(cursor, limit), nil, &detail)
	if err != nil {
		return gl.AlbumDetail{}, errors.Wrap(err, "get album")
	}
	return detail, nil
}

// PatchAlbum updates album metadata, returning the normalized record.
func (c *Client) PatchAlbum(ctx context.Context, id string, patch gl.AlbumPatch) (gl.Album, error) {
	var album gl.Album
	err := c.do(ctx, http.MethodPatch, "/albums/"+id, nil, patch, &album)
	if err != nil {
		return gl.Album{}, errors.Wrap(err, "patch album")
	}
	return album, nil
}

// DeleteAlbum removes the album. Member photos are untouched.
func (c *Client) DeleteAlbum(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/albums/"+id, nil, nil, nil)
	return errors.Wrap(err, "delete album")
}

type albumPhotosReq struct {
	PhotoIDs []string `json:"photo_ids"`
}

type addPhotosRes struct {
	Added int `json:"added"`
}

type removePhotosRes struct {
	Removed int `json:"removed"`
}

// AddAlbumPhotos associates photos with the album, returning how many were
// newly added.
func (c *Client) AddAlbumPhotos(ctx context.Context, id string, photoIDs []string) (int, error) {
	var res addPhotosRes
	in := albumPhotosReq{PhotoIDs: photoIDs}
	err := c.do(ctx, http.MethodPost, "/albums/"+id+"/photos", nil, in, &res)
	if err != nil {
		return 0, errors.Wrap(err, "add album photos")
	}
	return res.Added, nil
}

// RemoveAlbumPhotos dissociates photos from the album without deleting them.
func (c *Client) RemoveAlbumPhotos(ctx context.Context, id string, photoIDs []string) (int, error) {
	var res removePhotosRes
	in := albumPhotosReq{PhotoIDs: photoIDs}
	err := c.do(ctx, http.MethodDelete, "/albums/"+id+"/photos", nil, in, &res)
	if err != nil {
		return 0, errors.Wrap(err, "remove album photos")
	}
	return res.Removed, nil
}
