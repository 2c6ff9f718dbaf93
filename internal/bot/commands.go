package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"biobot/internal/biorhythm"
)

// commandList команды для меню Telegram и /help
var commandList = []struct {
	Command     string
	Description string
}{
	{"add", "Добавить человека: /add Имя ДД.ММ.ГГГГ [место]"},
	{"people", "Список людей"},
	{"remove", "Удалить человека: /remove N"},
	{"toggle", "Включить/выключить в сравнении: /toggle N"},
	{"bio", "Биоритмы человека: /bio N"},
	{"compare", "Сравнить активных людей"},
	{"type", "Цикл для сравнения: физ, эмо, инт"},
	{"date", "Дата сравнения: /date ДД.ММ.ГГГГ или сегодня"},
	{"smart", "Умные рекомендации: /smart [питание|спорт|творчество|благополучие]"},
	{"ics", "Календарь биоритмов: /ics N"},
	{"xlsx", "Таблица Excel с графиками активных людей"},
	{"digest", "Ежедневная рассылка: /digest on|off"},
	{"help", "Помощь"},
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("🔮 *Биоритмы*\n\n")
	sb.WriteString("Физический (23 дня), эмоциональный (28) и интеллектуальный (33) циклы от даты рождения.\n\n")
	for _, c := range commandList {
		sb.WriteString(fmt.Sprintf("/%s — %s\n", c.Command, escapeMarkdown(c.Description)))
	}
	return sb.String()
}

// addArgs разобранные аргументы /add
type addArgs struct {
	Name       string
	BirthDate  string
	BirthTime  string
	BirthPlace string
}

// parseAddArgs разбирает "Имя [Фамилия] ДД.ММ.ГГГГ [ЧЧ:ММ] [место...]".
// Имя: всё до первой даты.
func parseAddArgs(args string) (addArgs, error) {
	fields := strings.Fields(args)
	dateIdx := -1
	for i, f := range fields {
		if _, err := biorhythm.ParseDate("birthDate", f); err == nil {
			dateIdx = i
			break
		}
	}

	if dateIdx < 0 {
		return addArgs{}, fmt.Errorf("не найдена дата рождения, формат: /add Имя ДД.ММ.ГГГГ [место]")
	}
	if dateIdx == 0 {
		return addArgs{}, fmt.Errorf("укажите имя перед датой")
	}

	res := addArgs{
		Name:      strings.Join(fields[:dateIdx], " "),
		BirthDate: fields[dateIdx],
	}

	rest := fields[dateIdx+1:]
	if len(rest) > 0 {
		if _, err := time.Parse("15:04", rest[0]); err == nil {
			res.BirthTime = rest[0]
			rest = rest[1:]
		}
	}
	res.BirthPlace = strings.Join(rest, " ")

	if err := validateAddArgs(res); err != nil {
		return addArgs{}, err
	}
	return res, nil
}

// parseIndex разбирает номер человека из списка (с 1)
func parseIndex(args string, count int) (int, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return 0, fmt.Errorf("укажите номер из /people")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("номер должен быть числом")
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("нет человека с номером %d", n)
	}
	return n - 1, nil
}

// parseDateArg разбирает аргумент /date. nil означает "сегодня".
func parseDateArg(args string) (*time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(args))
	switch s {
	case "", "сегодня", "today":
		return nil, nil
	}
	d, err := biorhythm.ParseDate("date", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseDigestArg разбирает on/off для /digest
func parseDigestArg(args string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "on", "вкл", "да":
		return true, nil
	case "off", "выкл", "нет":
		return false, nil
	default:
		return false, fmt.Errorf("используйте /digest on или /digest off")
	}
}
