package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrFavoriteConflict = errors.New("current favorite changed since it was read")
	ErrEmptyVoterKey    = errors.New("voter key must not be empty")
	ErrNoFavorite       = errors.New("voter has no favorite")
	ErrInvalidSession   = errors.New("invalid or expired session token")
	ErrEmptyCatalogAdd  = errors.New("at least one item reference is required")
)
