package biorhythm

import (
	"time"
)

// SingleResult биоритмы одного человека на сегодня
type SingleResult struct {
	Today     Values        `json:"today"`
	Yesterday Values        `json:"yesterday"`
	Series    []SeriesPoint `json:"chartData"`
}

// CalculateSingle считает биоритмы профиля на день now и график за последние 15 дней
func CalculateSingle(p Profile, now time.Time) (SingleResult, error) {
	birth, err := p.ParseBirthDate()
	if err != nil {
		return SingleResult{}, err
	}

	return SingleResult{
		Today:     Compute(birth, now),
		Yesterday: Compute(birth, now.AddDate(0, 0, -1)),
		Series:    BuildSeries(birth, now, now, SingleDaysBefore, SingleDaysAfter, nil),
	}, nil
}

// PersonData биоритмы одного человека в режиме сравнения
type PersonData struct {
	Profile   Profile       `json:"profile"`
	Today     Values        `json:"today"`
	Yesterday Values        `json:"yesterday"`
	Selected  *Values       `json:"selectedDate,omitempty"`
	Series    []SeriesPoint `json:"chartData"`
}

// PersonValue значение выбранного цикла одного человека в общей точке графика
type PersonValue struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CombinedPoint точка общего графика, значения людей по ID профиля
type CombinedPoint struct {
	Label      string                 `json:"label"`
	Date       time.Time              `json:"fullDate"`
	IsToday    bool                   `json:"isToday"`
	IsSelected bool                   `json:"isSelected,omitempty"`
	People     map[string]PersonValue `json:"people"`
}

// MultiResult результат расчёта для группы
type MultiResult struct {
	People    []PersonData    `json:"people"`
	Combined  []CombinedPoint `json:"combinedChartData"`
	Dimension Dimension       `json:"comparisonType"`
}

// PersonSeries возвращает данные человека по ID профиля
func (r MultiResult) PersonSeries(id string) (PersonData, bool) {
	for _, p := range r.People {
		if p.Profile.ID == id {
			return p, true
		}
	}
	return PersonData{}, false
}

// CalculateMulti считает биоритмы группы вокруг даты ref (по 15 дней в обе стороны).
// Today всегда считается на now, Yesterday — на день раньше ref.
func CalculateMulti(profiles []Profile, ref, now time.Time, dim Dimension) (MultiResult, error) {
	profiles = EnsureColors(profiles)

	var selected *time.Time
	if !SameDay(ref, now) {
		selected = &ref
	}

	people := make([]PersonData, 0, len(profiles))
	for _, p := range profiles {
		birth, err := p.ParseBirthDate()
		if err != nil {
			return MultiResult{}, err
		}

		person := PersonData{
			Profile:   p,
			Today:     Compute(birth, now),
			Yesterday: Compute(birth, ref.AddDate(0, 0, -1)),
			Series:    BuildSeries(birth, ref, now, MultiDaysBefore, MultiDaysAfter, selected),
		}
		if selected != nil {
			v := Compute(birth, ref)
			person.Selected = &v
		}
		people = append(people, person)
	}

	return MultiResult{
		People:    people,
		Combined:  combine(people, ref, now, selected, dim),
		Dimension: dim,
	}, nil
}

// combine собирает общий график: по одной точке на день окна
func combine(people []PersonData, ref, now time.Time, selected *time.Time, dim Dimension) []CombinedPoint {
	byDay := make([]map[string]SeriesPoint, len(people))
	for i, person := range people {
		days := make(map[string]SeriesPoint, len(person.Series))
		for _, point := range person.Series {
			days[dayKey(point.Date)] = point
		}
		byDay[i] = days
	}

	combined := make([]CombinedPoint, 0, MultiDaysBefore+MultiDaysAfter+1)
	for i := -MultiDaysBefore; i <= MultiDaysAfter; i++ {
		date := ref.AddDate(0, 0, i)
		point := CombinedPoint{
			Label:      ShortLabel(date),
			Date:       date,
			IsToday:    SameDay(date, now),
			IsSelected: selected != nil && SameDay(date, *selected),
			People:     make(map[string]PersonValue, len(people)),
		}

		key := dayKey(date)
		for j, person := range people {
			day, ok := byDay[j][key]
			if !ok {
				continue
			}
			point.People[person.Profile.ID] = PersonValue{
				Value: day.Get(dim),
				Name:  person.Profile.Name,
				Color: person.Profile.Color,
			}
		}
		combined = append(combined, point)
	}
	return combined
}

func dayKey(t time.Time) string {
	return t.Format(ISODateLayout)
}
