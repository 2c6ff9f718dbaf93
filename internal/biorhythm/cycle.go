package biorhythm

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Периоды циклов в днях
const (
	PhysicalPeriod     = 23
	EmotionalPeriod    = 28
	IntellectualPeriod = 33
)

// Dimension один из трёх циклов
type Dimension string

const (
	Physical     Dimension = "physical"
	Emotional    Dimension = "emotional"
	Intellectual Dimension = "intellectual"
)

// Dimensions перечисляет циклы в порядке отображения
var Dimensions = []Dimension{Physical, Emotional, Intellectual}

// Period возвращает период цикла в днях
func (d Dimension) Period() int {
	switch d {
	case Emotional:
		return EmotionalPeriod
	case Intellectual:
		return IntellectualPeriod
	default:
		return PhysicalPeriod
	}
}

// Title возвращает название цикла для пользователя
func (d Dimension) Title() string {
	switch d {
	case Emotional:
		return "эмоциональный"
	case Intellectual:
		return "интеллектуальный"
	default:
		return "физический"
	}
}

// ParseDimension преобразует строку в Dimension.
// Принимает английские имена и русские сокращения.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical", "физический", "физ", "ф":
		return Physical, nil
	case "emotional", "эмоциональный", "эмо", "э":
		return Emotional, nil
	case "intellectual", "интеллектуальный", "инт", "и":
		return Intellectual, nil
	default:
		return "", fmt.Errorf("неизвестный цикл: %q", s)
	}
}

// Values значения трёх циклов в процентах, от -100 до 100
type Values struct {
	Physical     int `json:"physical"`
	Emotional    int `json:"emotional"`
	Intellectual int `json:"intellectual"`
}

// Get возвращает значение указанного цикла
func (v Values) Get(d Dimension) int {
	switch d {
	case Emotional:
		return v.Emotional
	case Intellectual:
		return v.Intellectual
	default:
		return v.Physical
	}
}

// Compute рассчитывает значения циклов на дату on для даты рождения birth.
// Если on раньше birth, количество дней отрицательное и это не ошибка.
func Compute(birth, on time.Time) Values {
	days := DaysBetween(birth, on)
	return Values{
		Physical:     cycleValue(days, PhysicalPeriod),
		Emotional:    cycleValue(days, EmotionalPeriod),
		Intellectual: cycleValue(days, IntellectualPeriod),
	}
}

// cycleValue округляет 100*sin(2πd/P) до целого, половины от нуля
func cycleValue(days, period int) int {
	return int(math.Round(100 * math.Sin(2*math.Pi*float64(days)/float64(period))))
}

// DaysBetween возвращает число календарных дней от from до to.
// Время суток и часовой пояс каждой даты не учитываются, важен только день.
func DaysBetween(from, to time.Time) int {
	a := civilDay(from)
	b := civilDay(to)
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// SameDay сообщает, совпадают ли календарные дни
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// civilDay переносит календарную дату в полночь UTC
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
