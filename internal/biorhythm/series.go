package biorhythm

import (
	"fmt"
	"time"
)

// Окна графиков
const (
	SingleDaysBefore = 14
	SingleDaysAfter  = 0
	MultiDaysBefore  = 15
	MultiDaysAfter   = 15
)

// SeriesPoint одна точка графика
type SeriesPoint struct {
	Label      string    `json:"label"`
	Date       time.Time `json:"fullDate"`
	Values               // значения на этот день
	IsToday    bool      `json:"isToday"`
	IsSelected bool      `json:"isSelected,omitempty"`
}

// BuildSeries строит непрерывное окно от ref-before до ref+after включительно.
// IsToday отмечает день now, IsSelected — день selected, если он задан.
func BuildSeries(birth, ref, now time.Time, before, after int, selected *time.Time) []SeriesPoint {
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	series := make([]SeriesPoint, 0, before+after+1)
	for i := -before; i <= after; i++ {
		date := ref.AddDate(0, 0, i)
		series = append(series, SeriesPoint{
			Label:      ShortLabel(date),
			Date:       date,
			Values:     Compute(birth, date),
			IsToday:    SameDay(date, now),
			IsSelected: selected != nil && SameDay(date, *selected),
		})
	}
	return series
}

var monthsShort = [...]string{"янв", "фев", "мар", "апр", "мая", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var weekdaysAccusative = [...]string{
	"воскресенье", "понедельник", "вторник", "среду", "четверг", "пятницу", "субботу",
}

// ShortLabel возвращает короткую подпись дня, например "5 окт"
func ShortLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthsShort[t.Month()-1])
}

// LongLabel возвращает дату с днём недели, например "в понедельник, 5 октября"
func LongLabel(t time.Time) string {
	prep := "в"
	if t.Weekday() == time.Tuesday {
		prep = "во"
	}
	return fmt.Sprintf("%s %s, %d %s", prep, weekdaysAccusative[t.Weekday()], t.Day(), monthsGenitive[t.Month()-1])
}
