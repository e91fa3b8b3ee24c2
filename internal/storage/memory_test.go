package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzaproject/muza-bot/internal/models"
)

func seededStore(t *testing.T) *MemoryStorage {
	t.Helper()
	store := NewMemoryStorage()
	require.NoError(t, store.SeedInterests(context.Background(),
		[]string{"Живопись", "Архитектура", "Краеведение"}))
	return store
}

func TestSetUserInterestIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	id, ok, err := store.LookupInterestID(ctx, "Живопись")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.SetUserInterest(ctx, 1, id, true))
	require.NoError(t, store.SetUserInterest(ctx, 1, id, true))

	interests, err := store.GetUserInterests(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Живопись"}, interests)

	require.NoError(t, store.SetUserInterest(ctx, 1, id, false))
	require.NoError(t, store.SetUserInterest(ctx, 1, id, false))

	interests, err = store.GetUserInterests(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestSetUserInterestCreatesUser(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	id, _, err := store.LookupInterestID(ctx, "Архитектура")
	require.NoError(t, err)

	// No prior UpsertUser call.
	require.NoError(t, store.SetUserInterest(ctx, 5, id, true))

	interests, err := store.GetUserInterests(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Архитектура"}, interests)
}

func TestLookupInterestIDUnknownLabel(t *testing.T) {
	store := seededStore(t)

	_, ok, err := store.LookupInterestID(context.Background(), "Динозавры")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeedInterestsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	before, _, err := store.LookupInterestID(ctx, "Живопись")
	require.NoError(t, err)

	require.NoError(t, store.SeedInterests(ctx, []string{"Живопись", "Архитектура"}))

	after, ok, err := store.LookupInterestID(ctx, "Живопись")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, before, after)
}

func TestFindMuseumsByCity(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	for _, m := range []models.Museum{
		{Name: "Первый", Description: "о", City: "Москва", Address: "а"},
		{Name: "Второй", Description: "о", City: "москва", Address: "а"},
		{Name: "Третий", Description: "о", City: "Казань", Address: "а"},
	} {
		m := m
		require.NoError(t, store.AddMuseum(ctx, &m))
	}

	museums, err := store.FindMuseumsByCity(ctx, "МОСКВА", 10)
	require.NoError(t, err)
	assert.Len(t, museums, 2, "city match is case-insensitive")

	museums, err = store.FindMuseumsByCity(ctx, "Москва", 1)
	require.NoError(t, err)
	assert.Len(t, museums, 1)

	museums, err = store.FindMuseumsByCity(ctx, "Тверь", 10)
	require.NoError(t, err)
	assert.Empty(t, museums)
}

func TestMuseumTagLifecycle(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	m := models.Museum{Name: "Музей", Description: "о", City: "Москва", Address: "а"}
	require.NoError(t, store.AddMuseum(ctx, &m))

	tags, classified, err := store.GetMuseumTags(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.False(t, classified)

	id, _, err := store.LookupInterestID(ctx, "Живопись")
	require.NoError(t, err)
	require.NoError(t, store.AddMuseumTag(ctx, m.ID, id))
	require.NoError(t, store.AddMuseumTag(ctx, m.ID, id))
	require.NoError(t, store.MarkMuseumTagged(ctx, m.ID))
	require.NoError(t, store.MarkMuseumTagged(ctx, m.ID))

	tags, classified, err = store.GetMuseumTags(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Живопись"}, tags)
	assert.True(t, classified)
}
