package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"biobot/internal/biorhythm"
)

// Границы групповой оценки
const (
	GroupExcellentAbove = 50
	GroupCareBelow      = -20
)

// groupTemplates пары советов по циклу: [0] для энергичной группы, [1] для восстановления
var groupTemplates = map[biorhythm.Dimension][2][2]string{
	biorhythm.Physical: {
		{
			"💪 **Рекомендуемые групповые занятия**: командные виды спорта, походы, совместные HIIT-тренировки или дружеские соревнования.",
			"🏃 **Используйте энергию**: отличное время для задач, требующих физической выносливости, и непростых активностей.",
		},
		{
			"🧘 **Восстановительные занятия**: групповая йога, спокойные прогулки, совместная растяжка или расслабляющие практики.",
			"🛌 **Отдых в приоритете**: планируйте занятия низкой интенсивности и позаботьтесь о хорошем сне.",
		},
	},
	biorhythm.Emotional: {
		{
			"❤️ **Время для близости**: глубокие разговоры, совместное творчество, праздники или разрешение давних конфликтов.",
			"🎉 **Выражайте благодарность**: поделитесь тёплыми словами друг о друге и укрепите эмоциональные связи в группе.",
		},
		{
			"🤗 **Взаимная поддержка**: практикуйте активное слушание, откладывайте важные эмоциональные решения, проявляйте понимание.",
			"🌸 **Успокаивающие занятия**: групповая медитация, спокойная музыка, время на природе или мягкое творчество.",
		},
	},
	biorhythm.Intellectual: {
		{
			"🧠 **Время умственных вызовов**: мозговой штурм, решение сложных задач, освоение новых навыков или конструктивные дебаты.",
			"📚 **Интеллектуальные проекты**: стратегическое планирование, анализ данных, совместное письмо или групповое исследование.",
		},
		{
			"🎨 **Простое творчество**: свободное рисование, музыка, спокойные игры или занятия без сильной концентрации.",
			"📖 **Лёгкое обучение**: интересные документальные фильмы, вдохновляющее чтение или непринуждённые беседы на любимые темы.",
		},
	},
}

// GroupRecommendations строит советы для группы по одному циклу.
// Для пустого списка возвращает пустой срез.
func GroupRecommendations(values []biorhythm.PersonValue, dim biorhythm.Dimension, isToday bool) []string {
	when := "в выбранный день"
	if isToday {
		when = "сегодня"
	}
	return groupRecommendations(values, dim, isToday, when)
}

// CombinedRecommendations выбирает значения людей на дату ref и строит советы.
// Если ref сегодня, берётся Today, иначе Selected (или Today, если Selected нет).
func CombinedRecommendations(people []biorhythm.PersonData, dim biorhythm.Dimension, ref, now time.Time) []string {
	isToday := biorhythm.SameDay(ref, now)
	when := "сегодня"
	if !isToday {
		when = biorhythm.LongLabel(ref)
	}

	values := make([]biorhythm.PersonValue, 0, len(people))
	for _, person := range people {
		data := person.Today
		if !isToday && person.Selected != nil {
			data = *person.Selected
		}
		values = append(values, biorhythm.PersonValue{
			Value: data.Get(dim),
			Name:  person.Profile.Name,
			Color: person.Profile.Color,
		})
	}

	return groupRecommendations(values, dim, isToday, when)
}

func groupRecommendations(values []biorhythm.PersonValue, dim biorhythm.Dimension, isToday bool, when string) []string {
	recommendations := []string{}
	if len(values) == 0 {
		return recommendations
	}

	avg := Average(values)
	rounded := int(math.Round(avg))
	title := dim.Title()

	switch {
	case avg > GroupExcellentAbove:
		recommendations = append(recommendations, fmt.Sprintf(
			"🌟 **Отличный групповой момент: %s цикл** — средняя энергия группы %d%% %s.", title, rounded, when))
	case avg < GroupCareBelow:
		recommendations = append(recommendations, fmt.Sprintf(
			"⚠️ **Группе нужна забота** — %s цикл %s требует особого внимания (среднее: %d%%).", title, when, rounded))
	default:
		recommendations = append(recommendations, fmt.Sprintf(
			"⚖️ **Группа в равновесии** — %s цикл %s на умеренном уровне (среднее: %d%%).", title, when, rounded))
	}

	leaders, support := splitPerformers(values)
	if len(leaders) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"🚀 **Лидеры дня**: %s — на пике (%s цикл). Могут вести и поддерживать остальных.",
			strings.Join(leaders, ", "), title))
	}
	if len(support) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"🤝 **Нужна поддержка**: %s — стоит уделить больше внимания (%s цикл). Группа может помочь.",
			strings.Join(support, ", "), title))
	}

	templates, ok := groupTemplates[dim]
	if ok {
		pair := templates[1]
		if avg > GroupExcellentAbove {
			pair = templates[0]
		}
		recommendations = append(recommendations, pair[0], pair[1])
	}

	if isToday {
		slot := "после обеда (14:00–17:00) для более спокойных занятий"
		if avg > GroupExcellentAbove {
			slot = "утро (8:00–11:00), чтобы использовать энергию группы по максимуму"
		}
		recommendations = append(recommendations, fmt.Sprintf("⏰ **Лучшее время дня**: %s.", slot))
	}

	return recommendations
}

// Average возвращает среднее арифметическое значений
func Average(values []biorhythm.PersonValue) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v.Value
	}
	return float64(sum) / float64(len(values))
}

// splitPerformers возвращает имена тех, кто выше 50, и тех, кто ниже -20
func splitPerformers(values []biorhythm.PersonValue) (leaders, support []string) {
	for _, v := range values {
		switch {
		case v.Value > GroupExcellentAbove:
			leaders = append(leaders, v.Name)
		case v.Value < GroupCareBelow:
			support = append(support, v.Name)
		}
	}
	return leaders, support
}
