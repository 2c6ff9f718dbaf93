package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biobot/internal/biorhythm"
)

func pv(name string, value int) biorhythm.PersonValue {
	return biorhythm.PersonValue{Name: name, Value: value, Color: "#fff"}
}

func TestGroupRecommendations_Empty(t *testing.T) {
	recs := GroupRecommendations(nil, biorhythm.Physical, true)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGroupRecommendations_Balanced(t *testing.T) {
	recs := GroupRecommendations([]biorhythm.PersonValue{pv("Анна", 80), pv("Борис", 10)}, biorhythm.Physical, true)

	// заголовок, лидеры, два совета, время дня
	require.Len(t, recs, 5)
	assert.Contains(t, recs[0], "равновесии")
	assert.Contains(t, recs[0], "45%")
	assert.Contains(t, recs[1], "Лидеры дня")
	assert.Contains(t, recs[1], "Анна")
	assert.NotContains(t, recs[1], "Борис")
	for _, r := range recs {
		assert.NotContains(t, r, "Нужна поддержка")
	}
	assert.Equal(t, groupTemplates[biorhythm.Physical][1][0], recs[2])
	assert.Contains(t, recs[4], "14:00–17:00")
}

func TestGroupRecommendations_Excellent(t *testing.T) {
	recs := GroupRecommendations([]biorhythm.PersonValue{pv("Анна", 90), pv("Борис", 60)}, biorhythm.Intellectual, false)

	require.Len(t, recs, 4)
	assert.Contains(t, recs[0], "Отличный")
	assert.Contains(t, recs[0], "75%")
	assert.Contains(t, recs[1], "Анна, Борис")
	assert.Equal(t, groupTemplates[biorhythm.Intellectual][0][0], recs[2])
	assert.Equal(t, groupTemplates[biorhythm.Intellectual][0][1], recs[3])
}

func TestGroupRecommendations_NeedsCare(t *testing.T) {
	recs := GroupRecommendations([]biorhythm.PersonValue{pv("Анна", -90), pv("Борис", -30), pv("Вера", 55)}, biorhythm.Emotional, true)

	assert.Contains(t, recs[0], "забота")
	assert.Contains(t, recs[0], "-22%")

	var support string
	for _, r := range recs {
		if strings.Contains(r, "Нужна поддержка") {
			support = r
		}
	}
	assert.Contains(t, support, "Анна, Борис")
	assert.Contains(t, recs[len(recs)-1], "Лучшее время дня")
}

func TestGroupRecommendations_SinglePerson(t *testing.T) {
	recs := GroupRecommendations([]biorhythm.PersonValue{pv("Анна", 0)}, biorhythm.Physical, false)
	assert.Len(t, recs, 3)
}

func TestCombinedRecommendations_UsesSelectedDate(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	ref := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	selected := biorhythm.Values{Physical: 95}

	people := []biorhythm.PersonData{
		{Profile: biorhythm.Profile{Name: "Анна"}, Today: biorhythm.Values{Physical: -90}, Selected: &selected},
	}

	recs := CombinedRecommendations(people, biorhythm.Physical, ref, now)
	assert.Contains(t, recs[0], "95%")
	assert.Contains(t, recs[0], "в понедельник, 19 октября")
	for _, r := range recs {
		assert.NotContains(t, r, "Лучшее время дня")
	}

	today := CombinedRecommendations(people, biorhythm.Physical, now, now)
	assert.Contains(t, today[0], "-90%")
	assert.Contains(t, today[0], "сегодня")
}
