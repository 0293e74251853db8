package gallery

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Album groups photos. CoverPhotoID is a weak reference: it may point at a
// photo that is no longer a member, or no photo at all.
type Album struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CoverPhotoID null.String `json:"cover_photo_id"`
	CreatedAt    time.Time   `json:"created_at"`
}

type AlbumPage struct {
	Items      []Album `json:"items"`
	NextCursor string  `json:"next_cursor"`
}

// AlbumDetail is an album plus the loaded prefix of its member photos, in
// server order.
type AlbumDetail struct {
	Album
	Photos     []Photo `json:"photos"`
	NextCursor string  `json:"next_cursor"`
}

type CreateAlbumRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	CoverPhotoID *string  `json:"cover_photo_id,omitempty"`
	PhotoIDs     []string `json:"photo_ids,omitempty"`
}

// AlbumPatch updates album metadata. Nil fields are left untouched; a
// CoverPhotoID set to an invalid null.String clears the cover on the backend.
type AlbumPatch struct {
	Title        *string      `json:"title,omitempty"`
	Description  *string      `json:"description,omitempty"`
	CoverPhotoID *null.String `json:"cover_photo_id,omitempty"`
}
