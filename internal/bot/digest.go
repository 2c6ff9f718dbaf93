package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron"
	"go.uber.org/zap"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
	"biobot/internal/repository"
)

// StartDigest запускает ежедневную рассылку по расписанию schedule.
// Останавливается при отмене ctx.
func (b *Bot) StartDigest(ctx context.Context, schedule string) error {
	c := cron.NewWithLocation(b.loc)
	if err := c.AddFunc(schedule, func() { b.sendDigests(ctx) }); err != nil {
		return fmt.Errorf("некорректное расписание рассылки %q: %w", schedule, err)
	}
	c.Start()

	b.log.Info("рассылка запущена", zap.String("schedule", schedule), zap.String("timezone", b.loc.String()))

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return nil
}

// sendDigests отправляет сводку всем чатам с включённой рассылкой
func (b *Bot) sendDigests(ctx context.Context) {
	chats, err := b.settings.ChatsWith(ctx, repository.KeyDigest, "on")
	if err != nil {
		b.log.Error("ошибка получения чатов для рассылки", zap.Error(err))
		return
	}

	sent := 0
	for _, chatID := range chats {
		text, err := b.digestText(ctx, chatID)
		if err != nil {
			b.log.Warn("сводка не сформирована", zap.Int64("chat_id", chatID), zap.Error(err))
			continue
		}
		if text == "" {
			continue
		}
		b.send(chatID, text)
		sent++
	}
	b.log.Info("рассылка завершена", zap.Int("chats", len(chats)), zap.Int("sent", sent))
}

// digestText формирует сводку на сегодня; пустая строка, если активных людей нет
func (b *Bot) digestText(ctx context.Context, chatID int64) (string, error) {
	_, active, prefs, err := b.loadPeople(ctx, chatID)
	if err != nil {
		return "", err
	}
	if len(active) == 0 {
		return "", nil
	}

	now := b.today()
	res, err := biorhythm.CalculateMulti(active, now, now, prefs.Dimension)
	if err != nil {
		return "", err
	}
	return renderDigest(res), nil
}

// renderDigest выводит значения всех людей и советы по выбранному циклу
func renderDigest(res biorhythm.MultiResult) string {
	var sb strings.Builder
	sb.WriteString("☀️ *Биоритмы на сегодня*\n\n")
	for _, person := range res.People {
		sb.WriteString(fmt.Sprintf("%s: Ф %+d%% · Э %+d%% · И %+d%%\n",
			escapeMarkdown(person.Profile.Name),
			person.Today.Physical, person.Today.Emotional, person.Today.Intellectual))
	}

	values := make([]biorhythm.PersonValue, 0, len(res.People))
	for _, person := range res.People {
		values = append(values, biorhythm.PersonValue{
			Value: person.Today.Get(res.Dimension),
			Name:  person.Profile.Name,
			Color: person.Profile.Color,
		})
	}
	if recs := analysis.GroupRecommendations(values, res.Dimension, true); len(recs) > 0 {
		sb.WriteString("\n" + renderRecommendations(recs))
	}
	return sb.String()
}
