package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
)

// Event событие календаря на целый день
type Event struct {
	UID         string
	Summary     string
	Description string
	Date        time.Time
}

// GenerateICS генерирует .ics файл с несколькими событиями.
// stamp время формирования (DTSTAMP).
func GenerateICS(calName string, events []Event, stamp time.Time) string {
	var sb strings.Builder

	writeLine(&sb, "BEGIN:VCALENDAR")
	writeLine(&sb, "VERSION:2.0")
	writeLine(&sb, "PRODID:-//BioBot//Biorhythm Calendar//RU")
	writeLine(&sb, "CALSCALE:GREGORIAN")
	writeLine(&sb, "METHOD:PUBLISH")
	if calName != "" {
		writeLine(&sb, "X-WR-CALNAME:"+escapeICS(calName))
	}

	for _, event := range events {
		writeLine(&sb, "BEGIN:VEVENT")
		writeLine(&sb, "UID:"+event.UID)
		writeLine(&sb, "DTSTAMP:"+formatICSTime(stamp))
		writeLine(&sb, "DTSTART;VALUE=DATE:"+formatICSDate(event.Date))
		writeLine(&sb, "DTEND;VALUE=DATE:"+formatICSDate(event.Date.AddDate(0, 0, 1)))
		writeLine(&sb, "SUMMARY:"+escapeICS(event.Summary))
		if event.Description != "" {
			writeLine(&sb, "DESCRIPTION:"+escapeICS(event.Description))
		}
		writeLine(&sb, "TRANSP:TRANSPARENT")
		writeLine(&sb, "END:VEVENT")
	}

	writeLine(&sb, "END:VCALENDAR")

	return sb.String()
}

// maxLineOctets длина строки iCalendar без CRLF
const maxLineOctets = 75

// writeLine пишет строку с CRLF, перенося длинные строки (CRLF + пробел).
// Многобайтовые символы UTF-8 не разрываются.
func writeLine(sb *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString("\r\n ")
		line = line[cut:]
		// пробел в начале продолжения занимает один октет
		limit = maxLineOctets - 1
	}
	sb.WriteString(line)
	sb.WriteString("\r\n")
}

// WindowEvents превращает график человека в события: одно на каждый день
func WindowEvents(p biorhythm.Profile, series []biorhythm.SeriesPoint) []Event {
	events := make([]Event, 0, len(series))
	for _, point := range series {
		events = append(events, Event{
			UID:     fmt.Sprintf("%s-%s@biobot", p.ID, point.Date.Format("20060102")),
			Summary: fmt.Sprintf("%s: Ф %+d%% · Э %+d%% · И %+d%%", p.Name, point.Physical, point.Emotional, point.Intellectual),
			Description: strings.Join([]string{
				analysis.Describe(point.Physical, biorhythm.Physical),
				analysis.Describe(point.Emotional, biorhythm.Emotional),
				analysis.Describe(point.Intellectual, biorhythm.Intellectual),
			}, "\n"),
			Date: point.Date,
		})
	}
	return events
}

// WindowICS строит календарь биоритмов человека по его графику
func WindowICS(p biorhythm.Profile, series []biorhythm.SeriesPoint, stamp time.Time) string {
	return GenerateICS("Биоритмы: "+p.Name, WindowEvents(p, series), stamp)
}

// formatICSTime форматирует время в формат iCalendar
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate форматирует календарный день без времени
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS экранирует специальные символы для iCalendar
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
