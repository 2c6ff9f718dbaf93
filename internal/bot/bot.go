package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"biobot/internal/biorhythm"
	"biobot/internal/repository"
)

// profileStore хранилище профилей чата
type profileStore interface {
	Create(ctx context.Context, chatID int64, p biorhythm.Profile) (biorhythm.Profile, error)
	ListByChat(ctx context.Context, chatID int64) ([]biorhythm.Profile, error)
	Delete(ctx context.Context, chatID int64, id string) error
}

// settingsStore настройки чата
type settingsStore interface {
	Set(ctx context.Context, chatID int64, key, value string) error
	LoadPrefs(ctx context.Context, chatID int64) (repository.Prefs, error)
	SetActivePeople(ctx context.Context, chatID int64, ids []string) error
	SetSelectedDate(ctx context.Context, chatID int64, d *time.Time) error
	SetDigest(ctx context.Context, chatID int64, on bool) error
	ChatsWith(ctx context.Context, key, value string) ([]int64, error)
}

// sender отправляет сообщения в Telegram
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram бота
type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	profiles profileStore
	settings settingsStore
	log      *zap.Logger
	loc      *time.Location

	// now единственное место, где бот читает текущее время
	now func() time.Time
}

// New создаёт новый экземпляр бота
func New(api *tgbotapi.BotAPI, repo *repository.Repository, log *zap.Logger, loc *time.Location) *Bot {
	if loc == nil {
		loc = time.Local
	}
	return &Bot{
		api:      api,
		out:      api,
		profiles: repo.Profile,
		settings: repo.Settings,
		log:      log,
		loc:      loc,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// Start запускает бота и обрабатывает обновления до отмены ctx
func (b *Bot) Start(ctx context.Context) error {
	if err := b.registerCommands(); err != nil {
		b.log.Warn("не удалось зарегистрировать команды", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("бот запущен", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) registerCommands() error {
	commands := make([]tgbotapi.BotCommand, 0, len(commandList))
	for _, c := range commandList {
		commands = append(commands, tgbotapi.BotCommand{Command: c.Command, Description: c.Description})
	}
	_, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}

// send отправляет Markdown сообщение
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := b.out.Send(msg); err != nil {
		b.log.Error("ошибка отправки сообщения", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendPlain отправляет сообщение без разметки
func (b *Bot) sendPlain(chatID int64, text string) {
	if _, err := b.out.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("ошибка отправки сообщения", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// today возвращает текущую дату в часовом поясе бота
func (b *Bot) today() time.Time {
	return b.now().In(b.loc)
}
