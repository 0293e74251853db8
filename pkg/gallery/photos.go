package gallery

import "time"

type Photo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OriginKey   string    `json:"origin_key"`
	ContentType string    `json:"content_type"`
	Bytes       int64     `json:"bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoPage is one page of the photo library in server order. An empty
// NextCursor means the collection is exhausted.
type PhotoPage struct {
	Items      []Photo `json:"items"`
	NextCursor string  `json:"next_cursor"`
}

// SignedURL is a short-lived display URL for a single photo.
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignGrant is a write credential for uploading raw photo bytes to
// object storage.
type PresignGrant struct {
	URL     string            `json:"url"`
	Key     string            `json:"key"`
	Headers map[string]string `json:"headers"`
}

type ConfirmRequest struct {
	Key         string `json:"key"`
	Bytes       int64  `json:"bytes"`
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// PhotoPatch updates photo metadata. Nil fields are left untouched by the
// backend.
type PhotoPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
