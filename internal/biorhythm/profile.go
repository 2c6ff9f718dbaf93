package biorhythm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Форматы даты рождения, которые принимает калькулятор
const (
	ISODateLayout  = "2006-01-02"
	UserDateLayout = "02.01.2006"
)

// Palette цвета людей на графике, назначаются по индексу
var Palette = []string{
	"#fb7185", // розовый
	"#60a5fa", // синий
	"#4ade80", // зелёный
	"#fbbf24", // жёлтый
	"#a78bfa", // фиолетовый
	"#f97316", // оранжевый
	"#06b6d4", // бирюзовый
	"#ef4444", // красный
	"#84cc16", // лаймовый
	"#ec4899", // фуксия
}

// Profile человек, для которого считаются биоритмы
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BirthDate  string `json:"birthDate"`
	BirthTime  string `json:"birthTime,omitempty"`
	BirthPlace string `json:"birthPlace"`
	Ethnicity  string `json:"ethnicity,omitempty"`
	Color      string `json:"color"`
}

// ConfigurationError некорректные входные данные (например, дата рождения)
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("некорректное значение %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError проверяет, вызвана ли ошибка некорректными данными
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// ParseDate парсит дату в формате ГГГГ-ММ-ДД или ДД.ММ.ГГГГ
func ParseDate(field, value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, &ConfigurationError{Field: field, Value: value, Err: errors.New("пустая дата")}
	}

	parsed, err := time.Parse(ISODateLayout, s)
	if err != nil {
		parsed, err = time.Parse(UserDateLayout, s)
		if err != nil {
			return time.Time{}, &ConfigurationError{
				Field: field,
				Value: value,
				Err:   fmt.Errorf("ожидается ГГГГ-ММ-ДД или ДД.ММ.ГГГГ"),
			}
		}
	}
	return parsed, nil
}

// ParseBirthDate парсит дату рождения профиля
func (p Profile) ParseBirthDate() (time.Time, error) {
	return ParseDate("birthDate", p.BirthDate)
}

// EnsureColors назначает цвет из палитры тем профилям, у которых он не задан.
// Возвращает новый срез, исходный не изменяется.
func EnsureColors(profiles []Profile) []Profile {
	result := make([]Profile, len(profiles))
	for i, p := range profiles {
		if p.Color == "" {
			p.Color = ColorFor(i)
		}
		result[i] = p
	}
	return result
}

// ColorFor возвращает цвет палитры для индекса
func ColorFor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// FreeColor возвращает первый цвет палитры, которого нет в used.
// Если заняты все, цвета идут по кругу по числу занятых.
func FreeColor(used []string) string {
	taken := make(map[string]struct{}, len(used))
	for _, c := range used {
		taken[strings.ToLower(c)] = struct{}{}
	}
	for _, c := range Palette {
		if _, ok := taken[c]; !ok {
			return c
		}
	}
	return ColorFor(len(used))
}
