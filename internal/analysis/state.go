package analysis

import (
	"biobot/internal/biorhythm"
)

// State качественный уровень значения цикла
type State string

const (
	StateHigh   State = "high"
	StateMedium State = "medium"
	StateLow    State = "low"
)

// Trend направление изменения за сутки
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Thresholds задаёт нижние границы уровней high и medium (включительно).
// Разные места используют разные границы, поэтому общей нет.
type Thresholds struct {
	High   int
	Medium int
}

var (
	// DefaultThresholds для описаний и трендов: high >= 70, medium >= 30
	DefaultThresholds = Thresholds{High: 70, Medium: 30}

	// AnalysisThresholds поле State в PersonalAnalysis: high >= 70, medium >= 40
	AnalysisThresholds = Thresholds{High: 70, Medium: 40}
)

// Пороги разбиения группы в SmartRecommendations: high >= 60, low < 40
const (
	FusionHigh = 60
	FusionLow  = 40
)

// Classify возвращает уровень значения по порогам
func (t Thresholds) Classify(value int) State {
	switch {
	case value >= t.High:
		return StateHigh
	case value >= t.Medium:
		return StateMedium
	default:
		return StateLow
	}
}

// Classify использует DefaultThresholds
func Classify(value int) State {
	return DefaultThresholds.Classify(value)
}

// GetTrend возвращает up, если вчерашнего значения нет или сегодня не меньше вчерашнего
func GetTrend(today int, yesterday *int) Trend {
	if yesterday == nil || today >= *yesterday {
		return TrendUp
	}
	return TrendDown
}

var descriptions = map[biorhythm.Dimension][5]string{
	biorhythm.Physical: {
		"Исключительная физическая энергия",
		"Хорошая физическая энергия",
		"Умеренная физическая энергия",
		"Низкая физическая энергия",
		"Нужен физический отдых",
	},
	biorhythm.Emotional: {
		"Отличное эмоциональное состояние",
		"Хорошее эмоциональное состояние",
		"Стабильное эмоциональное состояние",
		"Чувствительное эмоциональное состояние",
		"Нужна эмоциональная забота",
	},
	biorhythm.Intellectual: {
		"Исключительная умственная ясность",
		"Хорошая умственная работоспособность",
		"Умеренная умственная работоспособность",
		"Низкая умственная работоспособность",
		"Нужен умственный отдых",
	},
}

// Describe возвращает описание значения по пяти уровням: >70, >30, >-30, >-70, остальное
func Describe(value int, dim biorhythm.Dimension) string {
	texts, ok := descriptions[dim]
	if !ok {
		return "Обычное состояние"
	}

	switch {
	case value > 70:
		return texts[0]
	case value > 30:
		return texts[1]
	case value > -30:
		return texts[2]
	case value > -70:
		return texts[3]
	default:
		return texts[4]
	}
}

// DimensionState значение цикла с описанием и трендом
type DimensionState struct {
	Value       int    `json:"value"`
	State       State  `json:"state"`
	Description string `json:"description"`
	Trend       Trend  `json:"trend"`
}

// ProfileState состояние человека по всем трём циклам
type ProfileState struct {
	Physical     DimensionState `json:"physical"`
	Emotional    DimensionState `json:"emotional"`
	Intellectual DimensionState `json:"intellectual"`
}

// Get возвращает состояние указанного цикла
func (s ProfileState) Get(dim biorhythm.Dimension) DimensionState {
	switch dim {
	case biorhythm.Emotional:
		return s.Emotional
	case biorhythm.Intellectual:
		return s.Intellectual
	default:
		return s.Physical
	}
}

// StateOf описывает сегодняшние значения; yesterday может быть nil
func StateOf(today biorhythm.Values, yesterday *biorhythm.Values) ProfileState {
	build := func(dim biorhythm.Dimension) DimensionState {
		value := today.Get(dim)
		var prev *int
		if yesterday != nil {
			y := yesterday.Get(dim)
			prev = &y
		}
		return DimensionState{
			Value:       value,
			State:       Classify(value),
			Description: Describe(value, dim),
			Trend:       GetTrend(value, prev),
		}
	}

	return ProfileState{
		Physical:     build(biorhythm.Physical),
		Emotional:    build(biorhythm.Emotional),
		Intellectual: build(biorhythm.Intellectual),
	}
}
