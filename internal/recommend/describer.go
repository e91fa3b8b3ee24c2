package recommend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/llm"
	"github.com/muzaproject/muza-bot/internal/models"
)

const (
	// Separator between per-museum paragraphs in the batched completion.
	// Rare enough not to occur in natural prose.
	descriptionSeparator = "|||"

	describeTemperature float32 = 0.7
	describeMaxTokens           = 3000
)

// Describer turns a ranked result into one natural-language paragraph per
// museum using a single batched completion.
type Describer struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewDescriber(completer llm.Completer, logger *zap.Logger) *Describer {
	return &Describer{
		completer: completer,
		logger:    logger,
	}
}

// Describe returns one paragraph per ranked museum, order preserved. An
// empty ranked list yields an empty result without an external call. Any
// failure or unparsable completion yields an empty result; partial output is
// never returned.
func (d *Describer) Describe(ctx context.Context, ranked []models.RankedMuseum) []string {
	if len(ranked) == 0 {
		return nil
	}

	prompt := descriptionPrompt(ranked)
	completion, err := d.completer.Complete(ctx, prompt, describeTemperature, describeMaxTokens)
	if err != nil {
		d.logger.Warn("Description generation failed", zap.Error(err))
		return nil
	}

	parts := strings.Split(completion, descriptionSeparator)
	if len(parts) != len(ranked) {
		d.logger.Warn("Description completion has wrong paragraph count",
			zap.Int("want", len(ranked)),
			zap.Int("got", len(parts)))
		return nil
	}

	descriptions := make([]string, len(parts))
	for i, part := range parts {
		text := strings.TrimSpace(part)
		if text == "" {
			d.logger.Warn("Description completion has an empty paragraph", zap.Int("index", i))
			return nil
		}
		descriptions[i] = text
	}
	return descriptions
}

func descriptionPrompt(ranked []models.RankedMuseum) string {
	var b strings.Builder
	b.WriteString("Ниже перечислены музеи, подобранные пользователю по его интересам.\n")
	for i, m := range ranked {
		fmt.Fprintf(&b, "%d. Музей: %s. Описание: %s. Совпавшие интересы: %s.\n",
			i+1, m.Name, m.Description, strings.Join(m.MatchedNames, ", "))
	}
	fmt.Fprintf(&b,
		"Для каждого музея напиши один самостоятельный абзац: кратко расскажи о музее "+
			"и объясни, почему он подходит под совпавшие интересы. "+
			"Раздели абзацы строго последовательностью %s. "+
			"Не добавляй нумерацию, заголовки и другие комментарии.",
		descriptionSeparator)
	return b.String()
}
