package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop/internal/models"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	user := &models.User{ID: 1, Username: "ada", Email: "ada@example.com", IsAdmin: true}
	require.NoError(t, store.Set("tok-123", user))

	token, got := store.Get()
	assert.Equal(t, "tok-123", token)
	require.NotNil(t, got)
	assert.Equal(t, *user, *got)
	assert.Equal(t, "tok-123", store.Token())
}

func TestStoreOverwrite(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("first", &models.User{ID: 1, Username: "ada"}))
	require.NoError(t, store.Set("second", &models.User{ID: 2, Username: "bob"}))

	token, user := store.Get()
	assert.Equal(t, "second", token)
	require.NotNil(t, user)
	assert.Equal(t, "bob", user.Username)
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("tok", &models.User{ID: 1, Username: "ada"}))
	require.NoError(t, store.Clear())

	token, user := store.Get()
	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.Empty(t, store.Token())
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)

	token, user := store.Get()
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestStoreCorruptedUserReadsAsAbsent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("tok", &models.User{ID: 1, Username: "ada"}))
	require.NoError(t, put(store.db, keyUser, "{not valid json"))

	token, user := store.Get()
	assert.Equal(t, "tok", token)
	assert.Nil(t, user)
}

func TestStoreSetKeepsOldPairWhenWriteFails(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("old", &models.User{ID: 1, Username: "ada"}))

	// Make the user row unwritable so Set fails after the token statement.
	require.NoError(t, store.db.Exec(
		`CREATE TRIGGER reject_user_write BEFORE UPDATE ON session_records
		 WHEN NEW.key = 'user' BEGIN SELECT RAISE(ABORT, 'rejected'); END`,
	).Error)

	err := store.Set("new", &models.User{ID: 2, Username: "bob"})
	require.Error(t, err)

	token, user := store.Get()
	assert.Equal(t, "old", token)
	require.NotNil(t, user)
	assert.Equal(t, "ada", user.Username)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("tok", &models.User{ID: 7, Username: "ada"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, user := reopened.Get()
	assert.Equal(t, "tok", token)
	require.NotNil(t, user)
	assert.Equal(t, 7, user.ID)
}
