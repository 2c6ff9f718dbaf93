package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biobot/internal/biorhythm"
)

func person(id, name string, today biorhythm.Values) biorhythm.PersonData {
	return biorhythm.PersonData{
		Profile: biorhythm.Profile{ID: id, Name: name},
		Today:   today,
	}
}

func assertCategories(t *testing.T, recs []SmartRecommendation) {
	t.Helper()
	require.Len(t, recs, 4)
	for i, c := range Categories {
		assert.Equal(t, c, recs[i].Category)
		assert.NotEmpty(t, recs[i].Title)
		assert.NotNil(t, recs[i].Fusion.Adaptations)
		assert.NotNil(t, recs[i].Fusion.SharedActivities)
		assert.NotNil(t, recs[i].Fusion.PersonalizedTips)
	}
}

func TestSmartRecommendations_Empty(t *testing.T) {
	recs := SmartRecommendations(nil)
	assertCategories(t, recs)
	for _, r := range recs {
		assert.Empty(t, r.Fusion.Strategy)
		assert.Empty(t, r.GroupDynamics)
		assert.Empty(t, r.Fusion.Adaptations)
		assert.Empty(t, r.Fusion.PersonalizedTips)
	}
}

func TestSmartRecommendations_Mixed(t *testing.T) {
	people := []biorhythm.PersonData{
		person("a", "Анна", biorhythm.Values{Physical: 85, Emotional: 65, Intellectual: 10}),
		person("b", "Борис", biorhythm.Values{Physical: 5, Emotional: 20, Intellectual: 70}),
	}

	recs := SmartRecommendations(people)
	assertCategories(t, recs)

	for _, r := range recs {
		assert.NotEmpty(t, r.Fusion.Strategy, r.Category)
		assert.Equal(t, r.Fusion.Strategy, r.GroupDynamics)
		assert.Len(t, r.Fusion.Adaptations, 4)
		assert.Len(t, r.Fusion.SharedActivities, 3)
		assert.Len(t, r.Profiles, 2)
	}

	nutrition := recs[0]
	assert.Contains(t, nutrition.Fusion.Adaptations[0], "Анна")
	assert.Contains(t, nutrition.Fusion.Adaptations[0], "Борис")

	creativity := recs[2]
	assert.Contains(t, creativity.Fusion.Adaptations[0], "Борис ведут")
}

func TestSmartRecommendations_PersonalizedTips(t *testing.T) {
	people := []biorhythm.PersonData{
		person("a", "Анна", biorhythm.Values{Physical: 85, Emotional: 45, Intellectual: -50}),
	}

	recs := SmartRecommendations(people)

	physical := bandTables[biorhythm.Physical][0]
	assert.Equal(t, []string{"Анна: " + physical.Label, physical.Needs[0], physical.Needs[1]},
		recs[0].Fusion.PersonalizedTips["a"])
	assert.Equal(t, recs[0].Fusion.PersonalizedTips["a"], recs[1].Fusion.PersonalizedTips["a"])

	intellectual := bandTables[biorhythm.Intellectual][4]
	assert.Equal(t, "Анна: "+intellectual.Label, recs[2].Fusion.PersonalizedTips["a"][0])

	emotional := bandTables[biorhythm.Emotional][2]
	assert.Equal(t, "Анна: "+emotional.Label, recs[3].Fusion.PersonalizedTips["a"][0])
}

func TestSmartRecommendations_UniformGroups(t *testing.T) {
	tests := []struct {
		name          string
		values        []int
		wantNutrition bool
	}{
		{"all high", []int{60, 95}, true},
		{"all low", []int{39, -80}, true},
		{"all medium", []int{40, 59}, false},
		{"high and medium", []int{70, 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var people []biorhythm.PersonData
			for i, v := range tt.values {
				people = append(people, person(string(rune('a'+i)), "P", biorhythm.Values{Physical: v, Emotional: v, Intellectual: v}))
			}

			recs := SmartRecommendations(people)
			assert.Equal(t, tt.wantNutrition, recs[0].Fusion.Strategy != "")
			assert.Empty(t, recs[0].Fusion.SharedActivities)

			// остальные категории покрывают только смешанную группу
			for _, r := range recs[1:] {
				assert.Empty(t, r.Fusion.Strategy, r.Category)
				assert.Empty(t, r.Fusion.Adaptations, r.Category)
			}
		})
	}
}

func TestAnalyzePerson(t *testing.T) {
	a := AnalyzePerson(person("a", "Анна", biorhythm.Values{Physical: 80, Emotional: 60, Intellectual: 19}))

	assert.Equal(t, "a", a.PersonID)
	assert.Equal(t, StateHigh, a.Physical.State)
	assert.Equal(t, StateMedium, a.Emotional.State)
	assert.Equal(t, StateLow, a.Intellectual.State)
	assert.Len(t, a.Physical.Needs, 4)
	assert.Equal(t, bandTables[biorhythm.Physical][0].Label, a.Physical.Summary)
	assert.Equal(t, bandTables[biorhythm.Emotional][1].Label, a.Emotional.Summary)
	assert.Equal(t, bandTables[biorhythm.Intellectual][4].Label, a.Intellectual.Summary)
}

func TestLookupBand_Boundaries(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{100, 0}, {80, 0}, {79, 1}, {60, 1}, {59, 2}, {40, 2}, {39, 3}, {20, 3}, {19, 4}, {0, 4}, {-100, 4},
	}

	for _, tt := range tests {
		got := lookupBand(biorhythm.Emotional, tt.value)
		assert.Equal(t, bandTables[biorhythm.Emotional][tt.want].Label, got.Label, "value %d", tt.value)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Питание")
	require.NoError(t, err)
	assert.Equal(t, CategoryNutrition, c)

	_, err = ParseCategory("sleep")
	assert.Error(t, err)
}
