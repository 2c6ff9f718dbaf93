package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
	"biobot/internal/calendar"
	"biobot/internal/excel"
	"biobot/internal/repository"
)

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !message.IsCommand() {
		b.sendPlain(chatID, "Не понимаю 🙂 Список команд: /help")
		return
	}

	args := message.CommandArguments()
	var err error

	switch message.Command() {
	case "start", "help":
		b.send(chatID, helpText())
	case "add":
		err = b.handleAdd(ctx, chatID, args)
	case "people":
		err = b.handlePeople(ctx, chatID)
	case "remove":
		err = b.handleRemove(ctx, chatID, args)
	case "toggle":
		err = b.handleToggle(ctx, chatID, args)
	case "bio":
		err = b.handleBio(ctx, chatID, args)
	case "type":
		err = b.handleType(ctx, chatID, args)
	case "date":
		err = b.handleDate(ctx, chatID, args)
	case "compare":
		err = b.handleCompare(ctx, chatID)
	case "smart":
		err = b.handleSmart(ctx, chatID, args)
	case "ics":
		err = b.handleICS(ctx, chatID, args)
	case "xlsx":
		err = b.handleXLSX(ctx, chatID)
	case "digest":
		err = b.handleDigest(ctx, chatID, args)
	default:
		b.sendPlain(chatID, "Неизвестная команда. Список команд: /help")
	}

	if err != nil {
		b.replyError(chatID, message.Command(), err)
	}
}

// userError ошибка ввода, текст показывается пользователю как есть
type userError struct{ error }

func badInput(err error) error {
	return userError{err}
}

func (b *Bot) replyError(chatID int64, command string, err error) {
	var ue userError
	if errors.As(err, &ue) || biorhythm.IsConfigurationError(err) {
		b.sendPlain(chatID, "❌ "+err.Error())
		return
	}
	b.log.Error("ошибка обработки команды",
		zap.String("command", command), zap.Int64("chat_id", chatID), zap.Error(err))
	b.sendPlain(chatID, "❌ Произошла ошибка, попробуйте позже")
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) error {
	parsed, err := parseAddArgs(args)
	if err != nil {
		return badInput(err)
	}

	p, err := b.profiles.Create(ctx, chatID, biorhythm.Profile{
		Name:       parsed.Name,
		BirthDate:  parsed.BirthDate,
		BirthTime:  parsed.BirthTime,
		BirthPlace: parsed.BirthPlace,
	})
	if err != nil {
		return err
	}

	prefs, err := b.settings.LoadPrefs(ctx, chatID)
	if err != nil {
		return err
	}
	if prefs.HasActive {
		ids, _ := repository.ToggleID(prefs.ActivePeople, p.ID)
		if err := b.settings.SetActivePeople(ctx, chatID, ids); err != nil {
			return err
		}
	}

	b.log.Info("добавлен профиль", zap.Int64("chat_id", chatID), zap.String("profile_id", p.ID))
	b.send(chatID, fmt.Sprintf("✅ Добавлен(а) *%s* — %s\nБиоритмы: /people, затем /bio N", escapeMarkdown(p.Name), p.BirthDate))
	return nil
}

// loadPeople возвращает всех людей чата, активных и настройки
func (b *Bot) loadPeople(ctx context.Context, chatID int64) (all, active []biorhythm.Profile, prefs repository.Prefs, err error) {
	all, err = b.profiles.ListByChat(ctx, chatID)
	if err != nil {
		return nil, nil, prefs, err
	}
	prefs, err = b.settings.LoadPrefs(ctx, chatID)
	if err != nil {
		return nil, nil, prefs, err
	}
	all = biorhythm.EnsureColors(all)
	active = repository.FilterActive(all, prefs.ActivePeople, prefs.HasActive)
	return all, active, prefs, nil
}

func (b *Bot) handlePeople(ctx context.Context, chatID int64) error {
	all, active, _, err := b.loadPeople(ctx, chatID)
	if err != nil {
		return err
	}
	b.send(chatID, renderPeople(all, active))
	return nil
}

// pick выбирает человека по номеру из /people
func (b *Bot) pick(ctx context.Context, chatID int64, args string) (biorhythm.Profile, error) {
	all, err := b.profiles.ListByChat(ctx, chatID)
	if err != nil {
		return biorhythm.Profile{}, err
	}
	idx, err := parseIndex(args, len(all))
	if err != nil {
		return biorhythm.Profile{}, badInput(err)
	}
	return biorhythm.EnsureColors(all)[idx], nil
}

func (b *Bot) handleRemove(ctx context.Context, chatID int64, args string) error {
	p, err := b.pick(ctx, chatID, args)
	if err != nil {
		return err
	}
	if err := b.profiles.Delete(ctx, chatID, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return badInput(fmt.Errorf("человек уже удалён"))
		}
		return err
	}

	prefs, err := b.settings.LoadPrefs(ctx, chatID)
	if err != nil {
		return err
	}
	if prefs.HasActive {
		ids := make([]string, 0, len(prefs.ActivePeople))
		for _, id := range prefs.ActivePeople {
			if id != p.ID {
				ids = append(ids, id)
			}
		}
		if err := b.settings.SetActivePeople(ctx, chatID, ids); err != nil {
			return err
		}
	}

	b.send(chatID, fmt.Sprintf("🗑 Удалён(а) *%s*", escapeMarkdown(p.Name)))
	return nil
}

func (b *Bot) handleToggle(ctx context.Context, chatID int64, args string) error {
	all, active, _, err := b.loadPeople(ctx, chatID)
	if err != nil {
		return err
	}
	idx, err := parseIndex(args, len(all))
	if err != nil {
		return badInput(err)
	}

	current := make([]string, 0, len(active))
	for _, p := range active {
		current = append(current, p.ID)
	}
	ids, added := repository.ToggleID(current, all[idx].ID)
	if err := b.settings.SetActivePeople(ctx, chatID, ids); err != nil {
		return err
	}

	status := "выключен(а) из сравнения"
	if added {
		status = "включен(а) в сравнение"
	}
	b.send(chatID, fmt.Sprintf("*%s* %s", escapeMarkdown(all[idx].Name), status))
	return nil
}

func (b *Bot) handleBio(ctx context.Context, chatID int64, args string) error {
	p, err := b.pick(ctx, chatID, args)
	if err != nil {
		return err
	}
	now := b.today()
	res, err := biorhythm.CalculateSingle(p, now)
	if err != nil {
		return err
	}
	b.send(chatID, renderSingle(p, res, now))
	return nil
}

func (b *Bot) handleType(ctx context.Context, chatID int64, args string) error {
	dim, err := biorhythm.ParseDimension(args)
	if err != nil {
		return badInput(fmt.Errorf("%v. Варианты: физ, эмо, инт", err))
	}
	if err := b.settings.Set(ctx, chatID, repository.KeyComparisonType, string(dim)); err != nil {
		return err
	}
	b.send(chatID, fmt.Sprintf("%s Сравниваем: *%s* цикл", dimensionIcons[dim], dim.Title()))
	return nil
}

func (b *Bot) handleDate(ctx context.Context, chatID int64, args string) error {
	d, err := parseDateArg(args)
	if err != nil {
		return err
	}
	if d != nil && biorhythm.SameDay(*d, b.today()) {
		d = nil
	}
	if err := b.settings.SetSelectedDate(ctx, chatID, d); err != nil {
		return err
	}
	if d == nil {
		b.send(chatID, "📅 Дата сравнения: *сегодня*")
		return nil
	}
	b.send(chatID, fmt.Sprintf("📅 Дата сравнения: *%s*", biorhythm.LongLabel(*d)))
	return nil
}

// referenceDate возвращает выбранную дату или сегодня
func referenceDate(prefs repository.Prefs, now time.Time) time.Time {
	if prefs.SelectedDate != nil {
		return *prefs.SelectedDate
	}
	return now
}

func (b *Bot) handleCompare(ctx context.Context, chatID int64) error {
	_, active, prefs, err := b.loadPeople(ctx, chatID)
	if err != nil {
		return err
	}

	now := b.today()
	ref := referenceDate(prefs, now)
	res, err := biorhythm.CalculateMulti(active, ref, now, prefs.Dimension)
	if err != nil {
		return err
	}

	text := renderCompare(res, ref, now)
	if recs := analysis.CombinedRecommendations(res.People, prefs.Dimension, ref, now); len(recs) > 0 {
		text += "\n" + renderRecommendations(recs)
	}
	b.send(chatID, text)
	return nil
}

func (b *Bot) handleSmart(ctx context.Context, chatID int64, args string) error {
	var only analysis.Category
	if strings.TrimSpace(args) != "" {
		c, err := analysis.ParseCategory(args)
		if err != nil {
			return badInput(err)
		}
		only = c
	}

	_, active, _, err := b.loadPeople(ctx, chatID)
	if err != nil {
		return err
	}
	now := b.today()
	res, err := biorhythm.CalculateMulti(active, now, now, biorhythm.Physical)
	if err != nil {
		return err
	}

	for _, rec := range analysis.SmartRecommendations(res.People) {
		if only != "" && rec.Category != only {
			continue
		}
		b.send(chatID, renderSmart(rec))
	}
	return nil
}

func (b *Bot) handleICS(ctx context.Context, chatID int64, args string) error {
	p, err := b.pick(ctx, chatID, args)
	if err != nil {
		return err
	}
	prefs, err := b.settings.LoadPrefs(ctx, chatID)
	if err != nil {
		return err
	}

	now := b.today()
	res, err := biorhythm.CalculateMulti([]biorhythm.Profile{p}, referenceDate(prefs, now), now, prefs.Dimension)
	if err != nil {
		return err
	}

	ics := calendar.WindowICS(p, res.People[0].Series, now)
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("biorhythm-%s.ics", res.People[0].Series[0].Date.Format("20060102")),
		Bytes: []byte(ics),
	})
	doc.Caption = fmt.Sprintf("📆 Биоритмы: %s, %d дней", p.Name, len(res.People[0].Series))
	if _, err := b.out.Send(doc); err != nil {
		return fmt.Errorf("ошибка отправки календаря: %w", err)
	}
	return nil
}

// handleXLSX выгружает сравнение активных людей в Excel
func (b *Bot) handleXLSX(ctx context.Context, chatID int64) error {
	_, active, prefs, err := b.loadPeople(ctx, chatID)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return badInput(fmt.Errorf("нет активных людей, добавьте кого-нибудь: /add"))
	}

	now := b.today()
	ref := referenceDate(prefs, now)
	res, err := biorhythm.CalculateMulti(active, ref, now, prefs.Dimension)
	if err != nil {
		return err
	}
	buf, err := excel.BiorhythmWorkbook(res)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  excel.WorkbookFilename(ref),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 Биоритмы: %d чел., %s цикл", len(active), prefs.Dimension.Title())
	if _, err := b.out.Send(doc); err != nil {
		return fmt.Errorf("ошибка отправки таблицы: %w", err)
	}
	b.log.Info("выгружена таблица", zap.Int64("chat_id", chatID), zap.Int("people", len(active)))
	return nil
}

func (b *Bot) handleDigest(ctx context.Context, chatID int64, args string) error {
	on, err := parseDigestArg(args)
	if err != nil {
		return badInput(err)
	}
	if err := b.settings.SetDigest(ctx, chatID, on); err != nil {
		return err
	}
	if on {
		b.send(chatID, "🔔 Ежедневная рассылка *включена*")
	} else {
		b.send(chatID, "🔕 Ежедневная рассылка *выключена*")
	}
	return nil
}
