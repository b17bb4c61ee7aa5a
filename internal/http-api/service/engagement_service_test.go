package service

import (
	"context"
	"strings"
	"testing"

	"artshare/internal/http-api/models"
	"artshare/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleLike_TwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateAccount(t, f.db, "alice", models.RoleArtist)
	bob := testutil.CreateAccount(t, f.db, "bob", models.RoleEnthusiast)
	art := testutil.CreateArtwork(t, f.db, alice, "Sunset", false)

	before, err := f.engagement.LikeCount(ctx, art.ID)
	require.NoError(t, err)

	first, err := f.engagement.ToggleLike(ctx, principalOf(bob), art.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, before+1, first.Count)

	second, err := f.engagement.ToggleLike(ctx, principalOf(bob), art.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, before, second.Count)
}

func TestToggleLike_RetriesAfterConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateAccount(t, f.db, "alice", models.RoleArtist)
	bob := testutil.CreateAccount(t, f.db, "bob", models.RoleEnthusiast)
	art := testutil.CreateArtwork(t, f.db, alice, "Sunset", false)
	failCreates(t, f.db, "likes", 1, gorm.ErrDuplicatedKey)

	result, err := f.engagement.ToggleLike(ctx, principalOf(bob), art.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.Count)
}

func TestToggleLike_GivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateAccount(t, f.db, "alice", models.RoleArtist)
	bob := testutil.CreateAccount(t, f.db, "bob", models.RoleEnthusiast)
	art := testutil.CreateArtwork(t, f.db, alice, "Sunset", false)
	failCreates(t, f.db, "likes", maxLikeAttempts, gorm.ErrDuplicatedKey)

	_, err := f.engagement.ToggleLike(ctx, principalOf(bob), art.ID)
	assert.ErrorIs(t, err, ErrDuplicateLike)

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleLike_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateAccount(t, f.db, "alice", models.RoleArtist)
	bob := testutil.CreateAccount(t, f.db, "bob", models.RoleEnthusiast)
	pending := testutil.CreateArtwork(t, f.db, alice, "Draft", true)

	_, err := f.engagement.ToggleLike(ctx, nil, pending.ID)
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = f.engagement.ToggleLike(ctx, principalOf(bob), pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.engagement.ToggleLike(ctx, principalOf(bob), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateAccount(t, f.db, "alice", models.RoleArtist)
	bob := testutil.CreateAccount(t, f.db, "bob", models.RoleEnthusiast)
	art := testutil.CreateArtwork(t, f.db, alice, "Sunset", false)

	view, err := f.engagement.PostComment(ctx, principalOf(bob), art.ID, "  <b>Lovely</b> & warm  ")
	require.NoError(t, err)
	assert.Equal(t, "Lovely & warm", view.Body)
	assert.Equal(t, "bob", view.AuthorUsername)

	_, err = f.engagement.PostComment(ctx, principalOf(bob), art.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.engagement.PostComment(ctx, principalOf(bob), art.ID, strings.Repeat("a", 2001))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.engagement.PostComment(ctx, principalOf(bob), art.ID, strings.Repeat("a", 2000))
	assert.NoError(t, err)

	_, err = f.engagement.PostComment(ctx, nil, art.ID, "hi")
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = f.engagement.PostComment(ctx, principalOf(bob), 9999, "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}
