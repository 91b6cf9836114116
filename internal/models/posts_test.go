package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func twoUsers(t *testing.T, database *sql.DB) (alice, bob *User) {
	t.Helper()
	var err error
	alice, err = CreateUser(database, "alice", "pw1")
	require.NoError(t, err)
	bob, err = CreateUser(database, "bob", "pw2")
	require.NoError(t, err)
	return alice, bob
}

func TestCreateThenList(t *testing.T) {
	database := newTestDB(t)
	alice, _ := twoUsers(t, database)

	id, err := CreatePost(database, alice, "T", "C")
	require.NoError(t, err)

	posts, err := ListPosts(database)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, int(id), posts[0].ID)
	require.Equal(t, "T", posts[0].Title)
	require.Equal(t, "C", posts[0].Body)
	require.Equal(t, "alice", posts[0].CreatorName)

	_, err = time.Parse(DateLayout, posts[0].Date)
	require.NoError(t, err, "date must be freshly stamped in the display layout")
}

func TestListOrderNewestFirst(t *testing.T) {
	database := newTestDB(t)
	alice, _ := twoUsers(t, database)

	_, err := CreatePost(database, alice, "first", "a")
	require.NoError(t, err)
	_, err = CreatePost(database, alice, "second", "b")
	require.NoError(t, err)

	posts, err := ListPosts(database)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "second", posts[0].Title)
	require.Equal(t, "first", posts[1].Title)
}

func TestUpdateByNonOwner(t *testing.T) {
	database := newTestDB(t)
	alice, bob := twoUsers(t, database)

	id, err := CreatePost(database, alice, "T", "C")
	require.NoError(t, err)

	err = UpdatePost(database, int(id), bob, "hijacked", "X")
	require.ErrorIs(t, err, ErrNotAuthorized)

	post, err := GetPost(database, int(id))
	require.NoError(t, err)
	require.Equal(t, "C", post.Body, "a rejected edit must leave the post unchanged")
	require.Equal(t, "T", post.Title)
}

func TestUpdateByOwner(t *testing.T) {
	database := newTestDB(t)
	alice, _ := twoUsers(t, database)

	id, err := CreatePost(database, alice, "T", "C")
	require.NoError(t, err)

	require.NoError(t, UpdatePost(database, int(id), alice, "T2", "C2"))

	post, err := GetPost(database, int(id))
	require.NoError(t, err)
	require.Equal(t, "T2", post.Title)
	require.Equal(t, "C2", post.Body)
	require.Equal(t, int(id), post.ID)
}

func TestUpdateMissingPost(t *testing.T) {
	database := newTestDB(t)
	alice, _ := twoUsers(t, database)

	err := UpdatePost(database, 999, alice, "T", "C")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteByNonOwner(t *testing.T) {
	database := newTestDB(t)
	alice, bob := twoUsers(t, database)

	id, err := CreatePost(database, alice, "T", "C")
	require.NoError(t, err)

	require.ErrorIs(t, DeletePost(database, int(id), bob.ID), ErrNotAuthorized)

	_, err = GetPost(database, int(id))
	require.NoError(t, err, "post must survive an unauthorized delete")
}

func TestDeleteTwiceIdempotent(t *testing.T) {
	database := newTestDB(t)
	alice, _ := twoUsers(t, database)

	id, err := CreatePost(database, alice, "T", "C")
	require.NoError(t, err)

	require.NoError(t, DeletePost(database, int(id), alice.ID))
	require.NoError(t, DeletePost(database, int(id), alice.ID), "second delete affects zero rows and succeeds")

	posts, err := ListPosts(database)
	require.NoError(t, err)
	require.Empty(t, posts)
}
