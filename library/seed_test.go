package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSampleData(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)

	added, err := SeedSampleData(mgr)
	require.NoError(t, err)
	assert.Equal(t, len(SampleBooks), added)

	books, err := slot.LoadAll()
	require.NoError(t, err)
	require.Len(t, books, 6)
	assert.Equal(t, "The Great Gatsby", books[0].Title)
	assert.Equal(t, "Sapiens", books[5].Title)
	assert.Equal(t, Stats{Total: 6, ToRead: 1, Reading: 2, Finished: 3}, CountByStatus(books))
}

func TestSeedSampleData_SkipsNonEmpty(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)
	seedBooks(t, slot, Book{ID: "mine", Title: "Mine", Author: "Me"})

	added, err := SeedSampleData(mgr)
	require.NoError(t, err)
	assert.Zero(t, added)

	books, err := slot.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, ids(books))
	assert.Equal(t, 1, slot.Saves, "no write beyond the fixture")
}

func TestSeedSampleData_Twice(t *testing.T) {
	t.Parallel()
	mgr, slot := newManager(t)

	_, err := SeedSampleData(mgr)
	require.NoError(t, err)
	added, err := SeedSampleData(mgr)
	require.NoError(t, err)
	assert.Zero(t, added)

	books, err := slot.LoadAll()
	require.NoError(t, err)
	assert.Len(t, books, len(SampleBooks))
}
