// Package bot implements the Telegram conversation: interest selection over
// inline keyboards and delivery of ranked museum recommendations.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/recommend"
	"github.com/muzaproject/muza-bot/internal/storage"
	"github.com/muzaproject/muza-bot/internal/taxonomy"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	storage     storage.Storage
	recommender *recommend.Service
	sessions    *sessions
	logger      *zap.Logger
}

func New(token string, storage storage.Storage, recommender *recommend.Service, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:         api,
		storage:     storage,
		recommender: recommender,
		sessions:    newSessions(),
		logger:      logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil && update.CallbackQuery == nil {
			continue
		}

		go b.handleUpdate(update)
	}

	return nil
}

// handleUpdate dispatches one inbound event under the user's session lock,
// so events for one user apply strictly one at a time.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := context.Background()

	var userID int64
	switch {
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
	case update.Message != nil:
		userID = update.Message.From.ID
	default:
		return
	}

	sess := b.sessions.get(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if update.CallbackQuery != nil {
		b.handleCallback(ctx, sess, update.CallbackQuery)
		return
	}

	if update.Message.IsCommand() {
		b.handleCommand(ctx, sess, update.Message)
		return
	}

	b.handleFreeText(ctx, sess, update.Message)
}

func (b *Bot) handleCommand(ctx context.Context, sess *session, message *tgbotapi.Message) {
	// Any command leaves the city-capture state.
	if message.Command() != commandCancel {
		sess.awaitingCity = false
	}

	switch message.Command() {
	case commandStart:
		b.handleStart(ctx, message)
	case commandHelp:
		b.sendMessage(message.Chat.ID, helpText)
	case commandPrivacy:
		b.sendMessage(message.Chat.ID, privacyText)
	case commandSelectInterests:
		b.sendCategories(message.Chat.ID)
	case commandRemoveInterest:
		b.handleRemoveInterest(ctx, message)
	case commandShowMyInterests:
		b.handleShowMyInterests(ctx, message)
	case commandMuseumsForMe:
		b.handleMuseumsForMe(ctx, sess, message)
	case commandCancel:
		b.handleCancel(sess, message)
	default:
		b.sendMessage(message.Chat.ID, unknownCommandText)
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	if err := b.storage.UpsertUser(ctx, message.From.ID); err != nil {
		b.logger.Error("Failed to upsert user",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendMessage(message.Chat.ID, genericFailureText)
		return
	}

	b.sendMessage(message.Chat.ID, startText)
	b.sendCategories(message.Chat.ID)
}

func (b *Bot) handleRemoveInterest(ctx context.Context, message *tgbotapi.Message) {
	interests, err := b.storage.GetUserInterests(ctx, message.From.ID)
	if err != nil {
		b.logger.Error("Failed to get user interests",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendMessage(message.Chat.ID, genericFailureText)
		return
	}

	if len(interests) == 0 {
		b.sendMessage(message.Chat.ID, noInterestsYetText)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, interest := range interests {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(interest, callbackRemovePrefix+interest)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Отмена", callbackCancelRemove)))

	msg := tgbotapi.NewMessage(message.Chat.ID, chooseRemoveText)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send remove keyboard",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

func (b *Bot) handleShowMyInterests(ctx context.Context, message *tgbotapi.Message) {
	interests, err := b.storage.GetUserInterests(ctx, message.From.ID)
	if err != nil {
		b.logger.Error("Failed to get user interests",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendMessage(message.Chat.ID, genericFailureText)
		return
	}

	if len(interests) == 0 {
		b.sendMessage(message.Chat.ID, noSelectedText)
		return
	}

	b.sendMessage(message.Chat.ID, "Ваши выбранные интересы:\n"+formatInterestList(interests))
}

func (b *Bot) handleMuseumsForMe(ctx context.Context, sess *session, message *tgbotapi.Message) {
	interests, err := b.storage.GetUserInterests(ctx, message.From.ID)
	if err != nil {
		b.logger.Error("Failed to get user interests",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendMessage(message.Chat.ID, genericFailureText)
		return
	}

	if len(interests) == 0 {
		b.sendMessage(message.Chat.ID, selectInterestsFirstText)
		return
	}

	sess.awaitingCity = true
	b.sendMessage(message.Chat.ID, askCityText)
}

func (b *Bot) handleCancel(sess *session, message *tgbotapi.Message) {
	if !sess.awaitingCity {
		b.sendMessage(message.Chat.ID, unknownCommandText)
		return
	}

	sess.awaitingCity = false
	b.sessions.drop(message.From.ID)
	b.sendMessage(message.Chat.ID, searchCancelledText)
}

// handleFreeText treats any text in the city-capture state as a literal city
// name; everything else is redirected to the command list.
func (b *Bot) handleFreeText(ctx context.Context, sess *session, message *tgbotapi.Message) {
	if !sess.awaitingCity {
		b.sendMessage(message.Chat.ID, unknownCommandText)
		return
	}

	city := strings.TrimSpace(message.Text)
	if city == "" {
		b.sendMessage(message.Chat.ID, emptyCityText)
		return
	}

	sess.awaitingCity = false

	interests, err := b.storage.GetUserInterests(ctx, message.From.ID)
	if err == nil && len(interests) > 0 {
		b.sendMessage(message.Chat.ID, fmt.Sprintf(
			"Ищу музеи в городе %s по вашим интересам: %s...",
			city, strings.Join(interests, ", ")))
	}

	b.deliverRecommendations(ctx, message.Chat.ID, message.From.ID, city)
	b.sessions.drop(message.From.ID)
}

func (b *Bot) deliverRecommendations(ctx context.Context, chatID, userID int64, city string) {
	result, err := b.recommender.Recommend(ctx, userID, city)
	if err != nil {
		b.logger.Error("Recommendation pipeline failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("city", city))
		b.sendMessage(chatID, genericFailureText)
		return
	}

	switch result.Kind {
	case recommend.ResultNoInterests:
		b.sendMessage(chatID, selectInterestsFirstText)
	case recommend.ResultNoMuseums:
		b.sendMessage(chatID, fmt.Sprintf("К сожалению, в городе %s ничего не нашлось.", result.City))
	case recommend.ResultNoMatches:
		b.sendMessage(chatID, fmt.Sprintf(
			"В городе %s не нашлось музеев, подходящих под ваши интересы.", result.City))
	case recommend.ResultNoDescriptions:
		b.sendMessage(chatID, descriptionsFailText)
	case recommend.ResultOK:
		b.sendMessage(chatID, fmt.Sprintf("Вот что я подобрал в городе %s:", result.City))
		for i, museum := range result.Museums {
			b.sendMessage(chatID, fmt.Sprintf("🏛 %s\n%s\nСовпавшие интересы: %s\n\n%s",
				museum.Name,
				museum.Address,
				strings.Join(museum.MatchedNames, ", "),
				result.Descriptions[i]))
		}
	}
}

func (b *Bot) sendCategories(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, chooseCategoryText)
	msg.ReplyMarkup = categoriesKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send categories",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func categoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("< В ГЛАВНОЕ МЕНЮ", callbackMainMenu)),
	}
	for _, category := range taxonomy.Categories() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(category, callbackCategoryPrefix+category)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatInterestList(interests []string) string {
	var b strings.Builder
	for _, interest := range interests {
		fmt.Fprintf(&b, "• %s\n", interest)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
