package models

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"miniblog/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSignupThenAuthenticate(t *testing.T) {
	database := newTestDB(t)

	user, err := CreateUser(database, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Name)

	got, err := Authenticate(database, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestSignupNameTaken(t *testing.T) {
	database := newTestDB(t)

	_, err := CreateUser(database, "alice", "pw1")
	require.NoError(t, err)

	_, err = CreateUser(database, "alice", "other")
	require.ErrorIs(t, err, ErrNameTaken)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	require.Equal(t, 1, count, "failed signup must not add a row")
}

func TestAuthenticateNonEnumerable(t *testing.T) {
	database := newTestDB(t)

	_, err := CreateUser(database, "alice", "pw1")
	require.NoError(t, err)

	_, unknownErr := Authenticate(database, "nobody", "pw1")
	_, wrongErr := Authenticate(database, "alice", "wrong")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongErr)
}

func TestPasswordStoredHashed(t *testing.T) {
	database := newTestDB(t)

	user, err := CreateUser(database, "alice", "pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw1")))
}

func TestUpdateUser(t *testing.T) {
	database := newTestDB(t)

	user, err := CreateUser(database, "alice", "pw1")
	require.NoError(t, err)

	require.NoError(t, UpdateUser(database, user.ID, "alicia", "pw2"))

	_, err = Authenticate(database, "alice", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := Authenticate(database, "alicia", "pw2")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestUpdateUserNameTaken(t *testing.T) {
	database := newTestDB(t)

	_, err := CreateUser(database, "alice", "pw1")
	require.NoError(t, err)
	bob, err := CreateUser(database, "bob", "pw2")
	require.NoError(t, err)

	require.ErrorIs(t, UpdateUser(database, bob.ID, "alice", "pw3"), ErrNameTaken)

	// keeping your own name while changing the password is not a conflict
	require.NoError(t, UpdateUser(database, bob.ID, "bob", "pw3"))
}

func TestFindOrCreateOAuthUser(t *testing.T) {
	database := newTestDB(t)

	first, err := FindOrCreateOAuthUser(database, "octocat")
	require.NoError(t, err)

	second, err := FindOrCreateOAuthUser(database, "octocat")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	require.Equal(t, 1, count)
}
