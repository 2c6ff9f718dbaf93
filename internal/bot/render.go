package bot

import (
	"fmt"
	"strings"
	"time"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
)

// sparkLevels символы графика от минимума к максимуму
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

var dimensionIcons = map[biorhythm.Dimension]string{
	biorhythm.Physical:     "💪",
	biorhythm.Emotional:    "❤️",
	biorhythm.Intellectual: "🧠",
}

var dimensionLetters = map[biorhythm.Dimension]string{
	biorhythm.Physical:     "Ф",
	biorhythm.Emotional:    "Э",
	biorhythm.Intellectual: "И",
}

var categoryIcons = map[analysis.Category]string{
	analysis.CategoryNutrition:  "🥗",
	analysis.CategoryExercise:   "🏋️",
	analysis.CategoryCreativity: "🎨",
	analysis.CategoryWellness:   "🌿",
}

// renderMarkup переводит разметку **жирный** в Markdown Telegram
// и экранирует остальные служебные символы.
func renderMarkup(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				sb.WriteRune('*')
				i++
				continue
			}
			sb.WriteString(`\*`)
		case '_', '`', '[':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeMarkdown экранирует пользовательский текст
func escapeMarkdown(s string) string {
	return renderMarkup(strings.ReplaceAll(s, "**", "* *"))
}

// spark возвращает символ графика для значения от -100 до 100
func spark(value int) rune {
	if value < -100 {
		value = -100
	}
	if value > 100 {
		value = 100
	}
	idx := (value + 100) * (len(sparkLevels) - 1) / 200
	return sparkLevels[idx]
}

// sparkline строит строку графика по значениям
func sparkline(values []int) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteRune(spark(v))
	}
	return sb.String()
}

// markerLine ставит ▲ под сегодняшним (или выбранным) днём
func markerLine(n int, marked func(i int) bool) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if marked(i) {
			sb.WriteRune('▲')
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func trendArrow(t analysis.Trend) string {
	if t == analysis.TrendDown {
		return "↓"
	}
	return "↑"
}

// renderSingle показывает состояние одного человека и график за 15 дней
func renderSingle(p biorhythm.Profile, res biorhythm.SingleResult, now time.Time) string {
	state := analysis.StateOf(res.Today, &res.Yesterday)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔮 *%s* — %s\n\n", escapeMarkdown(p.Name), biorhythm.ShortLabel(now)))
	for _, dim := range biorhythm.Dimensions {
		s := state.Get(dim)
		sb.WriteString(fmt.Sprintf("%s %s: *%d%%* %s — %s\n",
			dimensionIcons[dim], capitalize(dim.Title()), s.Value, trendArrow(s.Trend), s.Description))
	}

	if len(res.Series) > 0 {
		sb.WriteString("\n```\n")
		for _, dim := range biorhythm.Dimensions {
			values := make([]int, len(res.Series))
			for i, point := range res.Series {
				values[i] = point.Get(dim)
			}
			sb.WriteString(fmt.Sprintf("%s %s\n", dimensionLetters[dim], sparkline(values)))
		}
		sb.WriteString("  " + markerLine(len(res.Series), func(i int) bool { return res.Series[i].IsToday }) + "\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("_%s — %s_", res.Series[0].Label, res.Series[len(res.Series)-1].Label))
	}

	return sb.String()
}

// renderCompare показывает общий график группы по одному циклу
func renderCompare(res biorhythm.MultiResult, ref, now time.Time) string {
	var sb strings.Builder

	when := "сегодня"
	if !biorhythm.SameDay(ref, now) {
		when = biorhythm.LongLabel(ref)
	}
	sb.WriteString(fmt.Sprintf("%s *Сравнение: %s цикл* (%s)\n",
		dimensionIcons[res.Dimension], res.Dimension.Title(), when))

	if len(res.People) == 0 {
		sb.WriteString("\nНет активных людей. Добавьте кого-нибудь: /add")
		return sb.String()
	}

	width := 0
	for _, person := range res.People {
		width = max(width, len([]rune(person.Profile.Name)))
	}

	sb.WriteString("```\n")
	for _, person := range res.People {
		values := make([]int, len(res.Combined))
		for i, point := range res.Combined {
			values[i] = point.People[person.Profile.ID].Value
		}
		current := person.Today.Get(res.Dimension)
		if person.Selected != nil {
			current = person.Selected.Get(res.Dimension)
		}
		sb.WriteString(fmt.Sprintf("%s %s %+4d\n", padRight(person.Profile.Name, width), sparkline(values), current))
	}
	sb.WriteString(strings.Repeat(" ", width+1) + markerLine(len(res.Combined), func(i int) bool {
		return res.Combined[i].IsSelected || (res.Combined[i].IsToday && biorhythm.SameDay(ref, now))
	}) + "\n")
	sb.WriteString("```\n")
	sb.WriteString(fmt.Sprintf("_%s — %s_\n", res.Combined[0].Label, res.Combined[len(res.Combined)-1].Label))

	return sb.String()
}

// renderRecommendations выводит список советов
func renderRecommendations(recs []string) string {
	if len(recs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, renderMarkup(r))
	}
	return strings.Join(lines, "\n\n")
}

// renderSmart выводит одну умную рекомендацию
func renderSmart(rec analysis.SmartRecommendation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *%s*\n", categoryIcons[rec.Category], rec.Title))

	if rec.Fusion.Strategy != "" {
		sb.WriteString("\n" + renderMarkup(rec.Fusion.Strategy) + "\n")
	}
	if len(rec.Fusion.Adaptations) > 0 {
		sb.WriteString("\n")
		for _, a := range rec.Fusion.Adaptations {
			sb.WriteString("• " + renderMarkup(a) + "\n")
		}
	}
	if len(rec.Fusion.SharedActivities) > 0 {
		sb.WriteString("\n*Вместе:*\n")
		for _, a := range rec.Fusion.SharedActivities {
			sb.WriteString("• " + renderMarkup(a) + "\n")
		}
	}

	if len(rec.Profiles) > 0 {
		sb.WriteString("\n*Персонально:*\n")
		for _, p := range rec.Profiles {
			tips := rec.Fusion.PersonalizedTips[p.PersonID]
			if len(tips) == 0 {
				continue
			}
			sb.WriteString("👤 " + renderMarkup(tips[0]) + "\n")
			for _, tip := range tips[1:] {
				sb.WriteString("   – " + renderMarkup(tip) + "\n")
			}
		}
	} else {
		sb.WriteString("\nНет активных людей.")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderPeople выводит список людей чата с отметкой активных
func renderPeople(profiles []biorhythm.Profile, active []biorhythm.Profile) string {
	if len(profiles) == 0 {
		return "Список пуст. Добавьте человека: /add Имя ДД.ММ.ГГГГ"
	}

	isActive := make(map[string]bool, len(active))
	for _, p := range active {
		isActive[p.ID] = true
	}

	var sb strings.Builder
	sb.WriteString("👥 *Люди*\n\n")
	for i, p := range profiles {
		mark := "⬜"
		if isActive[p.ID] {
			mark = "✅"
		}
		line := fmt.Sprintf("%s %d. %s — %s", mark, i+1, escapeMarkdown(p.Name), p.BirthDate)
		if p.BirthPlace != "" {
			line += ", " + escapeMarkdown(p.BirthPlace)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n/toggle N — включить/выключить в сравнении")
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
