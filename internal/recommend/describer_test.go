package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/models"
)

func rankedFixture(names ...string) []models.RankedMuseum {
	var ranked []models.RankedMuseum
	for i, name := range names {
		ranked = append(ranked, models.RankedMuseum{
			Museum:       models.Museum{ID: int64(i + 1), Name: name},
			MatchCount:   1,
			MatchedNames: []string{"Живопись"},
		})
	}
	return ranked
}

func TestDescribeSplitsCompletion(t *testing.T) {
	completer := &fakeCompleter{fn: func(string) (string, error) {
		return "Первый абзац. ||| Второй абзац. ||| Третий абзац.", nil
	}}
	describer := NewDescriber(completer, zap.NewNop())

	descriptions := describer.Describe(context.Background(), rankedFixture("А", "Б", "В"))

	assert.Equal(t, []string{"Первый абзац.", "Второй абзац.", "Третий абзац."}, descriptions)
}

func TestDescribeEmptyInputMakesNoCall(t *testing.T) {
	completer := &fakeCompleter{}
	describer := NewDescriber(completer, zap.NewNop())

	assert.Empty(t, describer.Describe(context.Background(), nil))
	assert.Zero(t, completer.callCount())
}

func TestDescribeRejectsWrongParagraphCount(t *testing.T) {
	completer := &fakeCompleter{fn: func(string) (string, error) {
		return "Один абзац на два музея.", nil
	}}
	describer := NewDescriber(completer, zap.NewNop())

	assert.Empty(t, describer.Describe(context.Background(), rankedFixture("А", "Б")))
}

func TestDescribeRejectsEmptyParagraph(t *testing.T) {
	completer := &fakeCompleter{fn: func(string) (string, error) {
		return "Первый абзац. |||   ", nil
	}}
	describer := NewDescriber(completer, zap.NewNop())

	assert.Empty(t, describer.Describe(context.Background(), rankedFixture("А", "Б")))
}

func TestDescribeFailureYieldsEmptyResult(t *testing.T) {
	completer := &fakeCompleter{fn: func(string) (string, error) {
		return "", errors.New("service unavailable")
	}}
	describer := NewDescriber(completer, zap.NewNop())

	assert.Empty(t, describer.Describe(context.Background(), rankedFixture("А")))
}
