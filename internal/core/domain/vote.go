package domain

// VoteRecord is the relationship between one voter and one item.
// (VoterKey, ItemID) is the natural key. A record with both flags false
// is equivalent to no record at all; reads filter on the flags.
type VoteRecord struct {
	VoterKey   string `json:"voter_key"`
	ItemID     int64  `json:"item_id"`
	Liked      bool   `json:"liked"`
	IsFavorite bool   `json:"is_favorite"`
}

// ItemTally is one row of the ranked results: per-item counts summed
// over all voters. Items with no votes still appear with zero counts.
type ItemTally struct {
	ItemID        int64  `json:"item_id"`
	Reference     string `json:"reference"`
	FavoriteCount int64  `json:"favorite_count"`
	LikeCount     int64  `json:"like_count"`
}

// GalleryEntry is an ItemTally extended with the requesting voter's own
// flags, so the gallery can render like/favorite button states.
type GalleryEntry struct {
	ItemTally
	MyLiked    bool `json:"my_liked"`
	MyFavorite bool `json:"my_favorite"`
}

// VoterSummary aggregates one voter's activity for the export surface.
type VoterSummary struct {
	VoterKey       string `json:"voter_key"`
	LikesGiven     int64  `json:"likes_given"`
	FavoriteItemID *int64 `json:"favorite_item_id,omitempty"`
}
