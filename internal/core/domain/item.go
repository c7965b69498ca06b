package domain

import "time"

// Item is one votable catalog entry. Reference is an opaque image
// filename or URL; the voting core only carries it through.
type Item struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
