package recommend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/llm"
	"github.com/muzaproject/muza-bot/internal/models"
	"github.com/muzaproject/muza-bot/internal/storage"
	"github.com/muzaproject/muza-bot/internal/taxonomy"
)

const (
	classifyTemperature float32 = 0.6
	classifyMaxTokens           = 500
)

// Linker associates museums with interest labels. Classification runs at
// most once per museum: a completed attempt is recorded in storage even when
// it yields no labels, so later calls short-circuit without an external call.
type Linker struct {
	store     storage.Storage
	completer llm.Completer
	logger    *zap.Logger
}

func NewLinker(store storage.Storage, completer llm.Completer, logger *zap.Logger) *Linker {
	return &Linker{
		store:     store,
		completer: completer,
		logger:    logger,
	}
}

// EnsureTagged returns the museum's interest labels, classifying and
// persisting them first if the museum has never been classified. Failures
// are local: the museum is treated as having no tags for this attempt and a
// later request will retry.
func (l *Linker) EnsureTagged(ctx context.Context, museum models.Museum) []string {
	labels, classified, err := l.store.GetMuseumTags(ctx, museum.ID)
	if err != nil {
		l.logger.Error("Failed to read museum tags",
			zap.Error(err),
			zap.Int64("museum_id", museum.ID))
		return nil
	}
	if classified || len(labels) > 0 {
		return labels
	}

	prompt := classificationPrompt(museum, taxonomy.Vocabulary())
	completion, err := l.completer.Complete(ctx, prompt, classifyTemperature, classifyMaxTokens)
	if err != nil {
		l.logger.Warn("Museum classification failed",
			zap.Error(err),
			zap.Int64("museum_id", museum.ID),
			zap.String("museum", museum.Name))
		return nil
	}

	labels = parseLabels(completion)
	for _, label := range labels {
		interestID, ok, err := l.store.LookupInterestID(ctx, label)
		if err != nil {
			l.logger.Error("Failed to look up interest",
				zap.Error(err),
				zap.String("interest", label))
			return nil
		}
		if !ok {
			// Vocabulary is seeded from the taxonomy, so a known label
			// always resolves. Skip rather than fail if it does not.
			l.logger.Warn("Interest missing from storage", zap.String("interest", label))
			continue
		}
		if err := l.store.AddMuseumTag(ctx, museum.ID, interestID); err != nil {
			l.logger.Error("Failed to persist museum tag",
				zap.Error(err),
				zap.Int64("museum_id", museum.ID),
				zap.String("interest", label))
			return nil
		}
	}

	if err := l.store.MarkMuseumTagged(ctx, museum.ID); err != nil {
		l.logger.Error("Failed to mark museum as classified",
			zap.Error(err),
			zap.Int64("museum_id", museum.ID))
	}

	l.logger.Info("Museum classified",
		zap.Int64("museum_id", museum.ID),
		zap.String("museum", museum.Name),
		zap.Strings("interests", labels))
	return labels
}

func classificationPrompt(museum models.Museum, vocabulary []string) string {
	return fmt.Sprintf(
		"Есть музей: %s. Описание музея: %s. "+
			"Из следующего списка интересов выбери те, которые подходят этому музею: %s. "+
			"Интерес должен привязываться к музею только в том случае, если этой теме соответствует "+
			"как минимум один зал или памятник, а не отдельный экспонат. "+
			"В ответе перечисли только названия подходящих интересов через запятую, без дополнительных комментариев.",
		museum.Name, museum.Description, strings.Join(vocabulary, ", "))
}

// parseLabels splits a completion into vocabulary labels, dropping anything
// the model invented outside the controlled vocabulary.
func parseLabels(completion string) []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(completion, ",") {
		label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if label == "" || !taxonomy.Known(label) {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}
