package domain

// FavoriteStatus is the outcome of a SetFavorite call.
type FavoriteStatus string

const (
	// FavoriteSet means the item became the voter's favorite.
	FavoriteSet FavoriteStatus = "favorited"
	// FavoriteCleared means the item was the favorite and is no longer.
	FavoriteCleared FavoriteStatus = "unfavorited"
	// FavoriteNeedsConfirmation means another item is currently the
	// favorite; the caller must confirm the switch explicitly.
	FavoriteNeedsConfirmation FavoriteStatus = "needs_confirmation"
)

// FavoriteChange reports what SetFavorite did. CurrentFavorite is set
// only when Status is FavoriteNeedsConfirmation.
type FavoriteChange struct {
	Status          FavoriteStatus `json:"status"`
	CurrentFavorite *int64         `json:"current_favorite,omitempty"`
}
