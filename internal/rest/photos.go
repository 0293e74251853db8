package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// ListPhotos returns one page of the photo library.
func (c *Client) ListPhotos(ctx context.Context, cursor string, limit int) (gl.PhotoPage, error) {
	var page gl.PhotoPage
	err := c.do(ctx, http.MethodGet, "/photos", pageQuery(cursor, limit), nil, &page)
	if err != nil {
		return gl.PhotoPage{}, errors.Wrap(err, "list photos")
	}
	return page, nil
}

type presignReq struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// PresignPhoto obtains a storage write credential for a new photo.
func (c *Client) PresignPhoto(ctx context.Context, filename, contentType string) (gl.PresignGrant, error) {
	var grant gl.PresignGrant
	in := presignReq{Filename: filename, ContentType: contentType}
	err := c.do(ctx, http.MethodPost, "/photos/presign", nil, in, &grant)
	if err != nil {
		return gl.PresignGrant{}, errors.Wrap(err, "presign photo")
	}
	return grant, nil
}

// ConfirmPhoto finalizes an upload, creating the authoritative Photo record.
func (c *Client) ConfirmPhoto(ctx context.Context, req gl.ConfirmRequest) (gl.Photo, error) {
	var photo gl.Photo
	err := c.do(ctx, http.MethodPost, "/photos/confirm", nil, req, &photo)
	if err != nil {
		return gl.Photo{}, errors.Wrap(err, "confirm photo")
	}
	return photo, nil
}

// PhotoURL obtains a signed display URL valid for roughly ttl.
func (c *Client) PhotoURL(ctx context.Context, id string, ttl time.Duration) (gl.SignedURL, error) {
	q := url.Values{}
	q.Set("ttl", fmt.Sprintf("%d", int(ttl/time.Second)))
	var signed gl.SignedURL
	err := c.do(ctx, http.MethodGet, "/photos/"+id+"/url", q, nil, &signed)
	if err != nil {
		return gl.SignedURL{}, errors.Wrap(err, "get photo url")
	}
	return signed, nil
}

// PatchPhoto updates photo metadata, returning the normalized record.
func (c *Client) PatchPhoto(ctx context.Context, id string, patch gl.PhotoPatch) (gl.Photo, error) {
	var photo gl.Photo
	err := c.do(ctx, http.MethodPatch, "/photos/"+id, nil, patch, &photo)
	if err != nil {
		return gl.Photo{}, errors.Wrap(err, "patch photo")
	}
	return photo, nil
}

// DeletePhoto removes the photo record.
func (c *Client) DeletePhoto(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/photos/"+id, nil, nil, nil)
	return errors.Wrap(err, "delete photo")
}
