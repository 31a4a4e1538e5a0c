package generatedresumes

import "time"

// GeneratedResume is an archived PDF produced by a generate request.
type GeneratedResume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	StorageKey string    `json:"-"`
	SizeBytes  int64     `json:"size_bytes"`
	SHA256     string    `json:"sha256"`
	CreatedAt  time.Time `json:"created_at"`
}
