package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoevote/api/internal/core/domain"
)

// TestLikeAndFavoriteFlow walks one voter through the full journey:
// like two items, favorite the first, attempt to favorite the second
// (which must ask for confirmation), then confirm the switch.
func TestLikeAndFavoriteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	items := app.addItems(t, "shoe-1.jpg", "shoe-2.jpg")
	cookie := app.newSessionCookie(t, "a@x.com")

	// Like item 1.
	resp := app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/like", items[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var likeResp map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&likeResp))
	resp.Body.Close()
	assert.True(t, likeResp["liked"])

	// Like item 2.
	resp = app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/like", items[1].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Favorite item 1.
	resp = app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/favorite", items[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var change domain.FavoriteChange
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&change))
	resp.Body.Close()
	assert.Equal(t, domain.FavoriteSet, change.Status)

	// Favoriting item 2 must not switch silently.
	resp = app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/favorite", items[1].ID), nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&change))
	resp.Body.Close()
	assert.Equal(t, domain.FavoriteNeedsConfirmation, change.Status)
	require.NotNil(t, change.CurrentFavorite)
	assert.Equal(t, items[0].ID, *change.CurrentFavorite)

	// Confirm the switch.
	resp = app.doVoter(t, cookie, http.MethodPost,
		fmt.Sprintf("/api/items/%d/favorite/confirm", items[1].ID),
		map[string]int64{"previous_favorite": items[0].ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The favorite is now item 2.
	resp = app.doVoter(t, cookie, http.MethodGet, "/api/favorite", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fav map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fav))
	resp.Body.Close()
	assert.Equal(t, items[1].ID, fav["item_id"])

	// Item 1's record kept its like and lost the favorite flag.
	var liked, isFavorite bool
	err := app.DB.QueryRow(
		"SELECT liked, is_favorite FROM votes WHERE voter_key = $1 AND item_id = $2",
		"a@x.com", items[0].ID,
	).Scan(&liked, &isFavorite)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.False(t, isFavorite)
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	items := app.addItems(t, "shoe-1.jpg")
	cookie := app.newSessionCookie(t, "a@x.com")
	likePath := fmt.Sprintf("/api/items/%d/like", items[0].ID)

	// Favorite first, so we can verify the toggle leaves it alone.
	resp := app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/favorite", items[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for i, want := range []bool{true, false, true} {
		resp := app.doVoter(t, cookie, http.MethodPost, likePath, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var likeResp map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&likeResp))
		resp.Body.Close()
		assert.Equal(t, want, likeResp["liked"], "toggle %d", i)
	}

	var isFavorite bool
	err := app.DB.QueryRow(
		"SELECT is_favorite FROM votes WHERE voter_key = $1 AND item_id = $2",
		"a@x.com", items[0].ID,
	).Scan(&isFavorite)
	require.NoError(t, err)
	assert.True(t, isFavorite, "toggling likes must not touch the favorite")
}

func TestStaleConfirmationRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	items := app.addItems(t, "shoe-1.jpg", "shoe-2.jpg", "shoe-3.jpg")
	cookie := app.newSessionCookie(t, "a@x.com")

	resp := app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/favorite", items[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Confirmation claims the old favorite was item 2, but it is item 1.
	resp = app.doVoter(t, cookie, http.MethodPost,
		fmt.Sprintf("/api/items/%d/favorite/confirm", items[2].ID),
		map[string]int64{"previous_favorite": items[1].ID})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Nothing changed.
	resp = app.doVoter(t, cookie, http.MethodGet, "/api/favorite", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fav map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fav))
	resp.Body.Close()
	assert.Equal(t, items[0].ID, fav["item_id"])
}

// TestSingleFavoriteInvariantAtStorageLevel checks the backstop: even
// raw SQL cannot give one voter two favorites.
func TestSingleFavoriteInvariantAtStorageLevel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	items := app.addItems(t, "shoe-1.jpg", "shoe-2.jpg")

	_, err := app.DB.Exec(
		"INSERT INTO votes (voter_key, item_id, is_favorite) VALUES ($1, $2, true)",
		"a@x.com", items[0].ID)
	require.NoError(t, err)

	_, err = app.DB.Exec(
		"INSERT INTO votes (voter_key, item_id, is_favorite) VALUES ($1, $2, true)",
		"a@x.com", items[1].ID)
	require.Error(t, err, "partial unique index must reject a second favorite")

	var favorites int
	err = app.DB.QueryRow(
		"SELECT COUNT(*) FROM votes WHERE voter_key = $1 AND is_favorite", "a@x.com",
	).Scan(&favorites)
	require.NoError(t, err)
	assert.Equal(t, 1, favorites)
}

func TestUnfavoriteViaSecondClick(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	items := app.addItems(t, "shoe-1.jpg")
	cookie := app.newSessionCookie(t, "a@x.com")
	favPath := fmt.Sprintf("/api/items/%d/favorite", items[0].ID)

	resp := app.doVoter(t, cookie, http.MethodPost, favPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.doVoter(t, cookie, http.MethodPost, favPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var change domain.FavoriteChange
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&change))
	resp.Body.Close()
	assert.Equal(t, domain.FavoriteCleared, change.Status)

	resp = app.doVoter(t, cookie, http.MethodGet, "/api/favorite", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestLikeUnknownItemReturnsNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cookie := app.newSessionCookie(t, "a@x.com")

	resp := app.doVoter(t, cookie, http.MethodPost, "/api/items/424242/like", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRemoveVoterDeletesAllTheirVotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	items := app.addItems(t, "shoe-1.jpg", "shoe-2.jpg")
	voter := fmt.Sprintf("user-%s@example.com", uuid.New())
	cookie := app.newSessionCookie(t, voter)
	other := app.newSessionCookie(t, "keep@x.com")

	for _, item := range items {
		resp := app.doVoter(t, cookie, http.MethodPost, fmt.Sprintf("/api/items/%d/like", item.ID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	resp := app.doVoter(t, other, http.MethodPost, fmt.Sprintf("/api/items/%d/like", items[0].ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.doAdmin(t, http.MethodDelete, "/api/admin/voters/"+voter, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var count int
	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM votes WHERE voter_key = $1", voter).Scan(&count))
	assert.Equal(t, 0, count)

	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM votes WHERE voter_key = $1", "keep@x.com").Scan(&count))
	assert.Equal(t, 1, count, "other voters' records must survive")
}

func TestVoterEndpointsRequireSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Post(app.Server.URL+"/api/items/1/like", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, app.Server.URL+"/api/admin/items", nil)
	require.NoError(t, err)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "admin surface needs the shared secret")
	resp.Body.Close()
}
