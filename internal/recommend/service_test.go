package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/storage"
)

func selectInterest(t *testing.T, store *storage.MemoryStorage, userID int64, label string) {
	t.Helper()
	ctx := context.Background()
	id, ok, err := store.LookupInterestID(ctx, label)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, store.SetUserInterest(ctx, userID, id, true))
}

func TestRecommendWithoutInterests(t *testing.T) {
	store := newTestStore(t)
	addMuseum(t, store, "Музей искусств", "Москва")
	completer := &fakeCompleter{}
	service := NewService(store, completer, zap.NewNop(), Options{})

	result, err := service.Recommend(context.Background(), 100, "Москва")
	require.NoError(t, err)

	assert.Equal(t, ResultNoInterests, result.Kind)
	assert.Zero(t, completer.callCount())
}

func TestRecommendUnknownCity(t *testing.T) {
	store := newTestStore(t)
	addMuseum(t, store, "Музей искусств", "Москва")
	selectInterest(t, store, 100, "Живопись")
	completer := &fakeCompleter{}
	service := NewService(store, completer, zap.NewNop(), Options{})

	result, err := service.Recommend(context.Background(), 100, "Урюпинск")
	require.NoError(t, err)

	assert.Equal(t, ResultNoMuseums, result.Kind)
	assert.Equal(t, "Урюпинск", result.City)
	assert.Zero(t, completer.callCount(), "no classifier calls when the city lookup is empty")
}

func TestRecommendCityMatchIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	addMuseum(t, store, "Музей искусств", "Москва")
	selectInterest(t, store, 100, "Живопись")

	completer := &fakeCompleter{fn: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Есть музей:") {
			return "Живопись", nil
		}
		return "Отличный музей для любителей живописи.", nil
	}}
	service := NewService(store, completer, zap.NewNop(), Options{})

	result, err := service.Recommend(context.Background(), 100, "МОСКВА")
	require.NoError(t, err)

	require.Equal(t, ResultOK, result.Kind)
	require.Len(t, result.Museums, 1)
	assert.Equal(t, "Музей искусств", result.Museums[0].Name)
	assert.Equal(t, []string{"Живопись"}, result.Museums[0].MatchedNames)
	require.Len(t, result.Descriptions, 1)
}

func TestRecommendNoMatches(t *testing.T) {
	store := newTestStore(t)
	addMuseum(t, store, "Музей техники", "Москва")
	selectInterest(t, store, 100, "Живопись")

	completer := &fakeCompleter{fn: func(prompt string) (string, error) {
		return "Техника", nil
	}}
	service := NewService(store, completer, zap.NewNop(), Options{})

	result, err := service.Recommend(context.Background(), 100, "Москва")
	require.NoError(t, err)

	assert.Equal(t, ResultNoMatches, result.Kind)
}

func TestRecommendIsolatesTaggingFailures(t *testing.T) {
	store := newTestStore(t)
	good := addMuseum(t, store, "Музей искусств", "Москва")
	addMuseum(t, store, "Музей-призрак", "Москва")
	selectInterest(t, store, 100, "Живопись")

	completer := &fakeCompleter{fn: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Есть музей: Музей искусств"):
			return "Живопись", nil
		case strings.HasPrefix(prompt, "Есть музей: Музей-призрак"):
			return "", errors.New("timeout")
		default:
			return "Отличный музей для любителей живописи.", nil
		}
	}}
	service := NewService(store, completer, zap.NewNop(), Options{})

	result, err := service.Recommend(context.Background(), 100, "Москва")
	require.NoError(t, err, "one museum's failure must not abort the pipeline")

	require.Equal(t, ResultOK, result.Kind)
	require.Len(t, result.Museums, 1)
	assert.Equal(t, good.ID, result.Museums[0].ID)
}

func TestRecommendDescriptionFailureIsGeneric(t *testing.T) {
	store := newTestStore(t)
	addMuseum(t, store, "Музей искусств", "Москва")
	selectInterest(t, store, 100, "Живопись")

	completer := &fakeCompleter{fn: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Есть музей:") {
			return "Живопись", nil
		}
		return "", errors.New("service unavailable")
	}}
	service := NewService(store, completer, zap.NewNop(), Options{})

	result, err := service.Recommend(context.Background(), 100, "Москва")
	require.NoError(t, err)

	assert.Equal(t, ResultNoDescriptions, result.Kind)
	assert.NotEmpty(t, result.Museums, "ranking survives a description failure")
	assert.Empty(t, result.Descriptions)
}
