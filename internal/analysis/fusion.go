package analysis

import (
	"fmt"
	"strings"

	"biobot/internal/biorhythm"
)

// Category направление умных рекомендаций
type Category string

const (
	CategoryNutrition  Category = "nutrition"
	CategoryExercise   Category = "exercise"
	CategoryCreativity Category = "creativity"
	CategoryWellness   Category = "wellness"
)

// Categories порядок выдачи рекомендаций
var Categories = []Category{CategoryNutrition, CategoryExercise, CategoryCreativity, CategoryWellness}

// ParseCategory преобразует строку в Category
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nutrition", "питание":
		return CategoryNutrition, nil
	case "exercise", "спорт", "тренировки":
		return CategoryExercise, nil
	case "creativity", "творчество":
		return CategoryCreativity, nil
	case "wellness", "благополучие":
		return CategoryWellness, nil
	default:
		return "", fmt.Errorf("неизвестная категория: %q", s)
	}
}

// DimensionAnalysis разбор одного цикла человека
type DimensionAnalysis struct {
	Value   int      `json:"value"`
	State   State    `json:"state"`
	Needs   []string `json:"specificNeeds"`
	Summary string   `json:"summaryLabel"`
}

// PersonalAnalysis разбор всех циклов человека по сегодняшним значениям
type PersonalAnalysis struct {
	PersonID     string            `json:"personId"`
	PersonName   string            `json:"personName"`
	Physical     DimensionAnalysis `json:"physical"`
	Emotional    DimensionAnalysis `json:"emotional"`
	Intellectual DimensionAnalysis `json:"intellectual"`
}

// Get возвращает разбор указанного цикла
func (a PersonalAnalysis) Get(dim biorhythm.Dimension) DimensionAnalysis {
	switch dim {
	case biorhythm.Emotional:
		return a.Emotional
	case biorhythm.Intellectual:
		return a.Intellectual
	default:
		return a.Physical
	}
}

// Fusion групповая стратегия и советы каждому
type Fusion struct {
	Strategy         string              `json:"strategy"`
	Adaptations      []string            `json:"adaptations"`
	SharedActivities []string            `json:"sharedActivities"`
	PersonalizedTips map[string][]string `json:"personalizedTips"`
}

// SmartRecommendation рекомендация по одной категории
type SmartRecommendation struct {
	Category      Category           `json:"category"`
	Title         string             `json:"title"`
	GroupDynamics string             `json:"groupDynamics"`
	Profiles      []PersonalAnalysis `json:"individualProfiles"`
	Fusion        Fusion             `json:"intelligentFusion"`
}

// AnalyzePerson разбирает сегодняшние значения человека
func AnalyzePerson(person biorhythm.PersonData) PersonalAnalysis {
	build := func(dim biorhythm.Dimension) DimensionAnalysis {
		value := person.Today.Get(dim)
		b := lookupBand(dim, value)
		return DimensionAnalysis{
			Value:   value,
			State:   AnalysisThresholds.Classify(value),
			Needs:   append([]string(nil), b.Needs[:]...),
			Summary: b.Label,
		}
	}

	return PersonalAnalysis{
		PersonID:     person.Profile.ID,
		PersonName:   person.Profile.Name,
		Physical:     build(biorhythm.Physical),
		Emotional:    build(biorhythm.Emotional),
		Intellectual: build(biorhythm.Intellectual),
	}
}

// SmartRecommendations всегда возвращает четыре рекомендации:
// питание, спорт, творчество, благополучие.
func SmartRecommendations(people []biorhythm.PersonData) []SmartRecommendation {
	profiles := make([]PersonalAnalysis, 0, len(people))
	for _, person := range people {
		profiles = append(profiles, AnalyzePerson(person))
	}

	recommendations := make([]SmartRecommendation, 0, len(Categories))
	for _, category := range Categories {
		recommendations = append(recommendations, fuse(category, profiles))
	}
	return recommendations
}

// fusionRule описывает категорию: цикл разбиения и тексты стратегий
type fusionRule struct {
	title     string
	dimension biorhythm.Dimension
	mixed     func(high, low string) (strategy string, adaptations, shared []string)
	allHigh   func() (strategy string, adaptations []string)
	allLow    func() (strategy string, adaptations []string)
}

var fusionRules = map[Category]fusionRule{
	CategoryNutrition: {
		title:     "Умный персональный план питания",
		dimension: biorhythm.Physical,
		mixed:     nutritionMixed,
		allHigh:   nutritionAllHigh,
		allLow:    nutritionAllLow,
	},
	CategoryExercise: {
		title:     "Умная адаптивная программа тренировок",
		dimension: biorhythm.Physical,
		mixed:     exerciseMixed,
	},
	CategoryCreativity: {
		title:     "Умные совместные творческие занятия",
		dimension: biorhythm.Intellectual,
		mixed:     creativityMixed,
	},
	CategoryWellness: {
		title:     "Умное групповое эмоциональное благополучие",
		dimension: biorhythm.Emotional,
		mixed:     wellnessMixed,
	},
}

func fuse(category Category, profiles []PersonalAnalysis) SmartRecommendation {
	rule := fusionRules[category]

	fusion := Fusion{
		Adaptations:      []string{},
		SharedActivities: []string{},
		PersonalizedTips: make(map[string][]string, len(profiles)),
	}

	for _, p := range profiles {
		a := p.Get(rule.dimension)
		tips := []string{fmt.Sprintf("%s: %s", p.PersonName, a.Summary)}
		tips = append(tips, a.Needs[:min(2, len(a.Needs))]...)
		fusion.PersonalizedTips[p.PersonID] = tips
	}

	high, low := partition(profiles, rule.dimension)
	switch {
	case len(profiles) == 0:
		// пустая группа: стратегии нет
	case len(high) > 0 && len(low) > 0:
		fusion.Strategy, fusion.Adaptations, fusion.SharedActivities = rule.mixed(strings.Join(high, ", "), strings.Join(low, ", "))
	case len(high) == len(profiles) && rule.allHigh != nil:
		fusion.Strategy, fusion.Adaptations = rule.allHigh()
	case len(low) == len(profiles) && rule.allLow != nil:
		fusion.Strategy, fusion.Adaptations = rule.allLow()
	}

	return SmartRecommendation{
		Category:      category,
		Title:         rule.title,
		GroupDynamics: fusion.Strategy,
		Profiles:      profiles,
		Fusion:        fusion,
	}
}

// partition делит группу по значению цикла: high >= 60, low < 40
func partition(profiles []PersonalAnalysis, dim biorhythm.Dimension) (high, low []string) {
	for _, p := range profiles {
		value := p.Get(dim).Value
		switch {
		case value >= FusionHigh:
			high = append(high, p.PersonName)
		case value < FusionLow:
			low = append(low, p.PersonName)
		}
	}
	return high, low
}

func nutritionMixed(high, low string) (string, []string, []string) {
	return "Стратегия адаптивного меню: у группы контрастная энергия, нужно раздельное, но общее питание.",
		[]string{
			fmt.Sprintf("**Умный шведский стол**: станции, где %s берут энергичные блюда (белок, сложные углеводы, орехи), а %s — согревающие (супы, бульоны, тёплые блюда)", high, low),
			fmt.Sprintf("**Гибкое расписание**: %s завтракают рано и плотно, а %s — позже и спокойнее, в формате бранча", high, low),
			"**Адаптированные порции**: крупные и питательные порции для энергичных, небольшие и легкоусвояемые — для уставших",
			"**Совместная готовка**: энергичные берут на себя активную часть (нарезка, готовка), уставшие следят за процессом и организуют его",
		},
		[]string{
			"Совместная готовка, где роль каждого зависит от уровня энергии",
			"Семейные обеды с персональным меню, но общим временем за столом",
			"Групповая заготовка еды на неделю с вариантами под разные потребности",
		}
}

func nutritionAllHigh() (string, []string) {
	return "Стратегия высокой энергии: у всей группы много сил, подходят энергичные блюда и активная готовка.",
		[]string{
			"**Энергичные трапезы**: сытные белковые завтраки, обеды со сложными углеводами, сбалансированные ужины",
			"**Активная готовка**: совместное приготовление с элементом дружеского соревнования, гриль, кулинарные эксперименты",
			"**Постоянные перекусы**: орехи, энергетические батончики, смузи после тренировок весь день",
			"**Спортивная гидратация**: напитки с электролитами, натуральная ароматизированная вода, свежие соки",
		}
}

func nutritionAllLow() (string, []string) {
	return "Стратегия восстановления: всей группе нужна согревающая и легкоусвояемая еда.",
		[]string{
			"**Согревающие блюда**: питательные супы, домашнее рагу, блюда медленного приготовления",
			"**Спокойная готовка**: мультиварка, заготовки заранее, простые и питательные рецепты",
			"**Восстанавливающие продукты**: костный бульон, травяные чаи, продукты, богатые витаминами и минералами",
			"**Тихая обстановка**: еда в спокойном месте, тихая музыка и неспешные разговоры",
		}
}

func exerciseMixed(high, low string) (string, []string, []string) {
	return "Стратегия многоуровневых тренировок: программы, где каждый участвует по своим текущим силам.",
		[]string{
			fmt.Sprintf("**Адаптивные круговые**: %s выполняют интенсивные упражнения, а %s — облегчённые версии или восстановительные упражнения", high, low),
			"**Взаимодополняющие роли**: энергичные ведут разминку и мотивируют, уставшие следят за техникой и поддерживают эмоционально",
			"**Гибкая длительность**: длинные сессии для активных (60–90 мин), короткие для восстанавливающихся (20–30 мин)",
			"**Гибридные занятия**: динамичная йога для активных и восстановительная для отдыхающих, в одном месте и в одно время",
		},
		[]string{
			"Групповые прогулки в темпе самого медленного с интервалами ускорения для активных",
			"Танцы, где каждый двигается в своей интенсивности под общую музыку",
			"Командные игры с адаптированными ролями: активные на нагруженных позициях, отдыхающие на вспомогательных",
		}
}

func creativityMixed(high, low string) (string, []string, []string) {
	return "Стратегия интеллектуального сотрудничества: разные умственные возможности дополняют друг друга в общих проектах.",
		[]string{
			fmt.Sprintf("**Взаимодополняющие роли**: %s ведут концепцию и планирование, а %s сосредоточены на практическом исполнении и интуитивных идеях", high, low),
			"**Многоуровневые проекты**: задачи разной сложности, от простых до действительно трудных",
			"**Смена лидерства**: ведущий меняется в зависимости от текущих возможностей и типа задачи",
			"**Двусторонняя поддержка**: активные объясняют и структурируют, отдыхающие приносят спонтанные идеи и честную обратную связь",
		},
		[]string{
			"Совместное письмо: одни строят сюжет, другие развивают персонажей и диалоги",
			"Творческие занятия, где каждый вносит вклад по силам: планирование, исполнение, оформление",
			"Командное решение задач с ротацией ролей по сложности этапа",
		}
}

func wellnessMixed(high, low string) (string, []string, []string) {
	return "Стратегия эмоционального равновесия: разные эмоциональные состояния дополняют и поддерживают друг друга.",
		[]string{
			fmt.Sprintf("**Двусторонняя эмоциональная поддержка**: %s дают энергию и мотивацию, а %s приносят спокойствие и вдумчивый взгляд", high, low),
			"**Постепенные занятия**: начинать с мягкого, где может участвовать каждый, затем усиливать по состоянию группы",
			"**Безопасное пространство**: каждый выражает себя в меру своих эмоциональных сил и без давления",
			"**Уважение к ритму**: каждый участвует по своему текущему эмоциональному состоянию",
		},
		[]string{
			"Круги общения: эмоционально активные ведут, а тем, кому нужна поддержка, можно делиться без давления",
			"Выразительное творчество: активное создание или вдумчивое наблюдение, по состоянию",
			"Групповые медитации с ролями: одни ведут, другие просто принимают и расслабляются",
		}
}
