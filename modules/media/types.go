package media

import "time"

// Upload is one image received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredImage describes an image after it was written to the bucket.
type StoredImage struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Digest      string    `json:"digest"`
	CreatedAt   time.Time `json:"created_at"`
}
