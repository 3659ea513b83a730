package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "guardian.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTrustedRoundTrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AddTrusted("g1", "u1", "OWNER"))
	require.NoError(t, db.AddTrusted("g1", "u2", "OWNER"))
	require.NoError(t, db.AddTrusted("g2", "u1", "OWNER"))

	users, err := db.AllTrusted()
	require.NoError(t, err)
	require.Len(t, users, 3)

	keys := make([]string, 0, len(users))
	for _, u := range users {
		keys = append(keys, u.GuildID+"/"+u.UserID)
		assert.Equal(t, "OWNER", u.AddedBy)
		assert.NotZero(t, u.CreatedAt)
	}
	assert.ElementsMatch(t, []string{"g1/u1", "g1/u2", "g2/u1"}, keys)
}

func TestAddTrustedIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AddTrusted("g1", "u1", "OWNER"))
	require.NoError(t, db.AddTrusted("g1", "u1", "OWNER"))

	users, err := db.AllTrusted()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRemoveTrusted(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AddTrusted("g1", "u1", "OWNER"))
	require.NoError(t, db.RemoveTrusted("g1", "u1"))
	require.NoError(t, db.RemoveTrusted("g1", "missing"), "removing an absent entry is not an error")

	users, err := db.AllTrusted()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLogChannelBinding(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetLogChannel("g1")
	require.NoError(t, err)
	assert.Equal(t, "", got, "no binding yet")

	require.NoError(t, db.SetLogChannel("g1", "c1"))
	require.NoError(t, db.SetLogChannel("g2", "c2"))

	got, err = db.GetLogChannel("g1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got)

	// Overwrite is allowed.
	require.NoError(t, db.SetLogChannel("g1", "c9"))
	got, err = db.GetLogChannel("g1")
	require.NoError(t, err)
	assert.Equal(t, "c9", got)

	all, err := db.AllLogChannels()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"g1": "c9", "g2": "c2"}, all)
}
