package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCategoryHasInterests(t *testing.T) {
	for _, category := range Categories() {
		assert.NotEmpty(t, Interests(category), "category %q", category)
	}
}

func TestVocabularyMatchesCategories(t *testing.T) {
	vocabulary := Vocabulary()

	total := 0
	for _, category := range Categories() {
		total += len(Interests(category))
	}
	assert.Len(t, vocabulary, total)

	seen := make(map[string]struct{})
	for _, label := range vocabulary {
		_, dup := seen[label]
		assert.False(t, dup, "duplicate label %q", label)
		seen[label] = struct{}{}
		assert.True(t, Known(label))
	}
}

func TestKnownRejectsForeignLabels(t *testing.T) {
	assert.False(t, Known("Динозавры"))
	assert.False(t, Known(""))
	assert.False(t, Known("живопись"), "matching is case-sensitive")
}

func TestInterestsUnknownCategory(t *testing.T) {
	assert.Nil(t, Interests("Нет такой категории"))
}

func TestVocabularyIsStable(t *testing.T) {
	assert.Equal(t, Vocabulary(), Vocabulary())
}
