package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/taxonomy"
)

func (b *Bot) handleCallback(ctx context.Context, sess *session, query *tgbotapi.CallbackQuery) {
	intent, ok := ParseCallback(query.Data)
	if !ok {
		b.logger.Warn("Unrecognized callback code",
			zap.String("data", query.Data),
			zap.Int64("user_id", query.From.ID))
		b.answerCallback(query.ID, "")
		return
	}

	switch intent.Kind {
	case IntentShowCategory:
		sess.category = intent.Payload
		b.answerCallback(query.ID, "")
		b.editInterests(ctx, sess, query)
	case IntentSelectInterest:
		b.toggleInterest(ctx, sess, query, intent.Payload, true)
	case IntentUnselectInterest:
		b.toggleInterest(ctx, sess, query, intent.Payload, false)
	case IntentBackToCategories:
		sess.category = ""
		b.answerCallback(query.ID, "")
		b.editCategories(query)
	case IntentMainMenu:
		sess.category = ""
		sess.awaitingCity = false
		b.answerCallback(query.ID, "")
		b.editMessage(query, helpText, nil)
	case IntentRemoveInterest:
		b.removeInterest(ctx, query, intent.Payload)
	case IntentCancelRemove:
		b.answerCallback(query.ID, "")
		b.editMessage(query, removeCancelledText, nil)
	case IntentDone:
		sess.category = ""
		b.answerCallback(query.ID, "")
		b.finishSelection(ctx, query)
	}
}

// toggleInterest adds or removes a user-interest link and re-renders the
// interest list of the current category.
func (b *Bot) toggleInterest(ctx context.Context, sess *session, query *tgbotapi.CallbackQuery, interest string, present bool) {
	interestID, ok, err := b.storage.LookupInterestID(ctx, interest)
	if err != nil {
		b.logger.Error("Failed to look up interest",
			zap.Error(err),
			zap.String("interest", interest))
		b.answerCallback(query.ID, genericFailureText)
		return
	}
	if !ok {
		b.answerCallback(query.ID, fmt.Sprintf("Интерес '%s' не найден.", interest))
		return
	}

	if err := b.storage.SetUserInterest(ctx, query.From.ID, interestID, present); err != nil {
		b.logger.Error("Failed to update user interest",
			zap.Error(err),
			zap.Int64("user_id", query.From.ID),
			zap.String("interest", interest),
			zap.Bool("present", present))
		b.answerCallback(query.ID, genericFailureText)
		return
	}

	if present {
		b.answerCallback(query.ID, fmt.Sprintf("Вы выбрали: %s", interest))
	} else {
		b.answerCallback(query.ID, fmt.Sprintf("Интерес '%s' больше не выбран.", interest))
	}

	b.editInterests(ctx, sess, query)
}

func (b *Bot) removeInterest(ctx context.Context, query *tgbotapi.CallbackQuery, interest string) {
	interestID, ok, err := b.storage.LookupInterestID(ctx, interest)
	if err != nil {
		b.logger.Error("Failed to look up interest",
			zap.Error(err),
			zap.String("interest", interest))
		b.answerCallback(query.ID, genericFailureText)
		return
	}
	if !ok {
		b.answerCallback(query.ID, fmt.Sprintf("Интерес '%s' не найден.", interest))
		return
	}

	if err := b.storage.SetUserInterest(ctx, query.From.ID, interestID, false); err != nil {
		b.logger.Error("Failed to remove user interest",
			zap.Error(err),
			zap.Int64("user_id", query.From.ID),
			zap.String("interest", interest))
		b.answerCallback(query.ID, genericFailureText)
		return
	}

	b.answerCallback(query.ID, "")
	b.editMessage(query, fmt.Sprintf("Интерес '%s' успешно удален.", interest), nil)
}

func (b *Bot) finishSelection(ctx context.Context, query *tgbotapi.CallbackQuery) {
	interests, err := b.storage.GetUserInterests(ctx, query.From.ID)
	if err != nil {
		b.logger.Error("Failed to get user interests",
			zap.Error(err),
			zap.Int64("user_id", query.From.ID))
		b.editMessage(query, genericFailureText, nil)
		return
	}

	if len(interests) == 0 {
		b.editMessage(query, noSelectedText+" "+chooseCategoryText, keyboardPtr(categoriesKeyboard()))
		return
	}

	b.editMessage(query, fmt.Sprintf(
		"Ваши выбранные интересы:\n%s\n\nТеперь отправьте /%s, чтобы получить рекомендации.",
		formatInterestList(interests), commandMuseumsForMe), nil)
}

// editInterests re-renders the interest list of the category the session is
// browsing, marking already selected interests. Falls back to the category
// list when no category is in context.
func (b *Bot) editInterests(ctx context.Context, sess *session, query *tgbotapi.CallbackQuery) {
	if sess.category == "" {
		b.editCategories(query)
		return
	}

	selected, err := b.storage.GetUserInterests(ctx, query.From.ID)
	if err != nil {
		b.logger.Error("Failed to get user interests",
			zap.Error(err),
			zap.Int64("user_id", query.From.ID))
		b.editMessage(query, genericFailureText, nil)
		return
	}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, interest := range selected {
		selectedSet[interest] = struct{}{}
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("<< В ГЛАВНОЕ МЕНЮ", callbackMainMenu)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("< К СПИСКУ КАТЕГОРИЙ", callbackBackToCategories)),
	}
	for _, interest := range taxonomy.Interests(sess.category) {
		if _, ok := selectedSet[interest]; ok {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s [отменить выбор]", interest),
					callbackUnselectPrefix+interest)))
		} else {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(interest, callbackInterestPrefix+interest)))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("ГОТОВО ✅", callbackInterestsDone)))

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.editMessage(query,
		fmt.Sprintf("Выберите интересы в категории %s:", sess.category),
		&markup)
}

func (b *Bot) editCategories(query *tgbotapi.CallbackQuery) {
	b.editMessage(query, chooseCategoryText, keyboardPtr(categoriesKeyboard()))
}

func (b *Bot) editMessage(query *tgbotapi.CallbackQuery, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.Chattable
	if markup != nil {
		m := tgbotapi.NewEditMessageTextAndMarkup(
			query.Message.Chat.ID, query.Message.MessageID, text, *markup)
		edit = m
	} else {
		m := tgbotapi.NewEditMessageText(
			query.Message.Chat.ID, query.Message.MessageID, text)
		edit = m
	}

	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("Failed to edit message",
			zap.Error(err),
			zap.Int64("chat_id", query.Message.Chat.ID))
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("Failed to answer callback", zap.Error(err))
	}
}

func keyboardPtr(markup tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &markup
}
