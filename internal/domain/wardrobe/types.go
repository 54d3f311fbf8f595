package wardrobe

import "time"

// Item is a persisted wardrobe entry referencing a stored photo.
type Item struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Category   string    `json:"category"`
	StorageKey string    `json:"-"`
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UploadRequest captures one wardrobe photo upload.
type UploadRequest struct {
	Category string
	Filename string
	MimeType string
	Data     []byte
}
