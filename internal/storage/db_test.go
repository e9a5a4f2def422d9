package storage

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestDBStore_RoundTrip(t *testing.T) {
	s := NewDBStore(newTestDB(t))

	_, ok, err := s.Get(KeyProfile)
	require.NoError(t, err)
	assert.False(t, ok, "missing key reports absent, not an error")

	require.NoError(t, s.Set(KeyProfile, `{"weight_lbs":170}`))

	value, ok, err := s.Get(KeyProfile)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"weight_lbs":170}`, value)
}

func TestDBStore_SetOverwrites(t *testing.T) {
	s := NewDBStore(newTestDB(t))

	require.NoError(t, s.Set(KeyCaloricTarget, "2000"))
	require.NoError(t, s.Set(KeyCaloricTarget, "2200"))

	value, ok, err := s.Get(KeyCaloricTarget)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2200", value)
}

func TestDBStore_Delete(t *testing.T) {
	s := NewDBStore(newTestDB(t))

	require.NoError(t, s.Set(KeyConversation, "[]"))
	require.NoError(t, s.Delete(KeyConversation))

	_, ok, err := s.Get(KeyConversation)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete(KeyConversation), "deleting an absent key is not an error")
}
