package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
)

func TestRenderMarkup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"**Лидеры дня**: Анна", "*Лидеры дня*: Анна"},
		{"snake_case * звезда", `snake\_case \* звезда`},
		{"`код` [ссылка]", "\\`код\\` \\[ссылка]"},
		{"без разметки", "без разметки"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, renderMarkup(tt.in))
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\* \*Анна\_`, escapeMarkdown("**Анна_"))
}

func TestSpark(t *testing.T) {
	assert.Equal(t, '▁', spark(-100))
	assert.Equal(t, '█', spark(100))
	assert.Equal(t, '█', spark(150))
	assert.Equal(t, '▄', spark(0))
	assert.Equal(t, "▁▄█", sparkline([]int{-100, 0, 100}))
}

func TestMarkerLine(t *testing.T) {
	assert.Equal(t, "  ▲", markerLine(5, func(i int) bool { return i == 2 }))
	assert.Equal(t, "", markerLine(3, func(int) bool { return false }))
}

func TestRenderSingle(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	p := biorhythm.Profile{ID: "a", Name: "Анна", BirthDate: "1991-04-12"}
	res, err := biorhythm.CalculateSingle(p, now)
	require.NoError(t, err)

	text := renderSingle(p, res, now)
	assert.Contains(t, text, "*Анна* — 18 окт")
	assert.Contains(t, text, "Физический")
	assert.Contains(t, text, "Эмоциональный")
	assert.Contains(t, text, "Интеллектуальный")
	assert.Contains(t, text, "_4 окт — 18 окт_")
	assert.Equal(t, 2, strings.Count(text, "```"))
}

func TestRenderCompare(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	profiles := []biorhythm.Profile{
		{ID: "a", Name: "Анна", BirthDate: "1991-04-12"},
		{ID: "b", Name: "Бо", BirthDate: "1988-11-02"},
	}
	res, err := biorhythm.CalculateMulti(profiles, now, now, biorhythm.Emotional)
	require.NoError(t, err)

	text := renderCompare(res, now, now)
	assert.Contains(t, text, "эмоциональный цикл")
	assert.Contains(t, text, "(сегодня)")
	assert.Contains(t, text, "Бо   ")
	assert.Contains(t, text, "_3 окт — 2 ноя_")

	empty, err := biorhythm.CalculateMulti(nil, now, now, biorhythm.Physical)
	require.NoError(t, err)
	assert.Contains(t, renderCompare(empty, now, now), "Нет активных людей")
}

func TestRenderSmart(t *testing.T) {
	people := []biorhythm.PersonData{
		{Profile: biorhythm.Profile{ID: "a", Name: "Анна"}, Today: biorhythm.Values{Physical: 90}},
		{Profile: biorhythm.Profile{ID: "b", Name: "Борис"}, Today: biorhythm.Values{Physical: -50}},
	}
	recs := analysis.SmartRecommendations(people)

	text := renderSmart(recs[0])
	assert.Contains(t, text, "*Умный персональный план питания*")
	assert.Contains(t, text, "*Умный шведский стол*")
	assert.Contains(t, text, "*Вместе:*")
	assert.Contains(t, text, "👤 Анна: ")
	assert.Contains(t, text, "👤 Борис: ")
	assert.NotContains(t, text, "**")

	empty := renderSmart(analysis.SmartRecommendations(nil)[1])
	assert.Contains(t, empty, "Нет активных людей")
}

func TestRenderPeople(t *testing.T) {
	assert.Contains(t, renderPeople(nil, nil), "Список пуст")

	profiles := []biorhythm.Profile{
		{ID: "a", Name: "Анна", BirthDate: "12.04.1991", BirthPlace: "Казань"},
		{ID: "b", Name: "Борис", BirthDate: "02.11.1988"},
	}
	text := renderPeople(profiles, profiles[:1])
	assert.Contains(t, text, "✅ 1. Анна — 12.04.1991, Казань")
	assert.Contains(t, text, "⬜ 2. Борис — 02.11.1988")
}

func TestRenderDigest(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	res, err := biorhythm.CalculateMulti([]biorhythm.Profile{{ID: "a", Name: "Анна", BirthDate: "2026-10-18"}}, now, now, biorhythm.Physical)
	require.NoError(t, err)

	text := renderDigest(res)
	assert.Contains(t, text, "Анна: Ф +0% · Э +0% · И +0%")
	assert.Contains(t, text, "*Группа в равновесии*")
	assert.Contains(t, text, "*Лучшее время дня*")
}
