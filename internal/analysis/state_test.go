package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"biobot/internal/biorhythm"
)

func TestThresholds_Classify(t *testing.T) {
	tests := []struct {
		name       string
		thresholds Thresholds
		value      int
		want       State
	}{
		{"default high boundary", DefaultThresholds, 70, StateHigh},
		{"default medium boundary", DefaultThresholds, 30, StateMedium},
		{"default low", DefaultThresholds, 29, StateLow},
		{"analysis medium boundary", AnalysisThresholds, 40, StateMedium},
		{"analysis low", AnalysisThresholds, 39, StateLow},
		{"negative", AnalysisThresholds, -100, StateLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.thresholds.Classify(tt.value))
		})
	}
}

func TestGetTrend(t *testing.T) {
	ten, fifty := 10, 50

	assert.Equal(t, TrendUp, GetTrend(-40, nil))
	assert.Equal(t, TrendUp, GetTrend(10, &ten))
	assert.Equal(t, TrendUp, GetTrend(20, &ten))
	assert.Equal(t, TrendDown, GetTrend(20, &fifty))
}

func TestDescribe_Bands(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{71, "Исключительная физическая энергия"},
		{70, "Хорошая физическая энергия"},
		{30, "Умеренная физическая энергия"},
		{-30, "Низкая физическая энергия"},
		{-70, "Нужен физический отдых"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.value, biorhythm.Physical), "value %d", tt.value)
	}
	assert.Equal(t, "Нужен умственный отдых", Describe(-100, biorhythm.Intellectual))
	assert.Equal(t, "Обычное состояние", Describe(0, biorhythm.Dimension("spiritual")))
}

func TestStateOf(t *testing.T) {
	today := biorhythm.Values{Physical: 80, Emotional: -10, Intellectual: 35}
	yesterday := biorhythm.Values{Physical: 75, Emotional: 0, Intellectual: 35}

	s := StateOf(today, &yesterday)
	assert.Equal(t, TrendUp, s.Physical.Trend)
	assert.Equal(t, TrendDown, s.Emotional.Trend)
	assert.Equal(t, TrendUp, s.Intellectual.Trend)
	assert.Equal(t, StateHigh, s.Physical.State)
	assert.Equal(t, StateMedium, s.Get(biorhythm.Intellectual).State)
	assert.Equal(t, "Стабильное эмоциональное состояние", s.Emotional.Description)

	noPrev := StateOf(today, nil)
	assert.Equal(t, TrendUp, noPrev.Emotional.Trend)
}
