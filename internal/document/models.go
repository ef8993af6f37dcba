package document

import "time"

// Document is the wire-level document shape returned on reads. CreatedAt is
// generated at response time, not read back from the stored record; backends
// differ in whether they preserve the original write time, so the service
// reports lookup time uniformly for cached and storage-backed reads.
type Document struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
