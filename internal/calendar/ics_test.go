package calendar

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biobot/internal/biorhythm"
)

func TestEscapeICS(t *testing.T) {
	assert.Equal(t, `a\;b\,c\\d\ne`, escapeICS("a;b,c\\d\ne"))
	assert.Equal(t, `a\nb\nc`, escapeICS("a\r\nb\rc"))
}

func TestGenerateICS_FoldsLongLines(t *testing.T) {
	summary := strings.Repeat("Александра Константиновна: Ф +100% ", 4)
	events := []Event{{
		UID:         "p1-20261018@biobot",
		Summary:     summary,
		Description: strings.Repeat("Пик интеллектуальной активности\n", 3),
		Date:        time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	}}
	ics := GenerateICS("Биоритмы: Александра Константиновна", events, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))

	lines := strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n")
	folded := 0
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 75, line)
		assert.True(t, utf8.ValidString(line), line)
		if strings.HasPrefix(line, " ") {
			folded++
		}
	}
	assert.Positive(t, folded)

	unfolded := strings.ReplaceAll(ics, "\r\n ", "")
	assert.Contains(t, unfolded, "SUMMARY:"+summary+"\r\n")
	assert.Contains(t, unfolded, "X-WR-CALNAME:Биоритмы: Александра Константиновна\r\n")
	assert.Contains(t, unfolded, `DESCRIPTION:Пик интеллектуальной активности\nПик`)
}

func TestWriteLine(t *testing.T) {
	var sb strings.Builder
	writeLine(&sb, strings.Repeat("a", 75))
	assert.Equal(t, strings.Repeat("a", 75)+"\r\n", sb.String())

	sb.Reset()
	writeLine(&sb, strings.Repeat("a", 76))
	assert.Equal(t, strings.Repeat("a", 75)+"\r\n a\r\n", sb.String())

	// "ж" занимает два октета и не разрывается
	sb.Reset()
	writeLine(&sb, strings.Repeat("a", 74)+"жж")
	assert.Equal(t, strings.Repeat("a", 74)+"\r\n жж\r\n", sb.String())
}

func TestWindowICS(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	p := biorhythm.Profile{ID: "p1", Name: "Анна", BirthDate: "2000-01-01"}

	res, err := biorhythm.CalculateSingle(p, now)
	require.NoError(t, err)

	ics := WindowICS(p, res.Series, now)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	assert.Equal(t, 15, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "X-WR-CALNAME:Биоритмы: Анна\r\n")
	assert.Contains(t, ics, "UID:p1-20261018@biobot\r\n")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20261018\r\n")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20261019\r\n")
	assert.Contains(t, ics, "DTSTAMP:20261018T120000Z\r\n")
}

func TestWindowEvents_Summary(t *testing.T) {
	p := biorhythm.Profile{ID: "p1", Name: "Анна"}
	series := []biorhythm.SeriesPoint{{
		Date:   time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Values: biorhythm.Values{Physical: 50, Emotional: -7, Intellectual: 0},
	}}

	events := WindowEvents(p, series)
	require.Len(t, events, 1)
	assert.Equal(t, "Анна: Ф +50% · Э -7% · И +0%", events[0].Summary)
	assert.Contains(t, events[0].Description, "Хорошая физическая энергия")
}
