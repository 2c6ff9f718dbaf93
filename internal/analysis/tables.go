package analysis

import "biobot/internal/biorhythm"

// band уровень анализа: нижняя граница (включительно), подпись и потребности
type band struct {
	Min   int
	Label string
	Needs [4]string
}

// bandTables пять уровней на цикл, от высшего к низшему. Последний уровень без границы.
var bandTables = map[biorhythm.Dimension][5]band{
	biorhythm.Physical: {
		{80, "Максимальная энергия — прирождённый лидер в физической активности", [4]string{
			"Нужны очень интенсивные занятия, чтобы направить избыток энергии",
			"Может вести групповые тренировки и мотивировать других",
			"Требует постоянных физических вызовов, иначе появляется беспокойство",
			"Нужны дополнительный белок и сложные углеводы для поддержания энергии",
		}},
		{60, "Высокая энергия — активный участник", [4]string{
			"Нужны интенсивные, но контролируемые нагрузки",
			"Может активно участвовать в командных видах спорта",
			"Подходят упражнения на выносливость и силу",
			"Требуется энергичное, сбалансированное питание",
		}},
		{40, "Умеренная энергия — надёжный участник", [4]string{
			"Нужны умеренные занятия с постепенным ростом нагрузки",
			"Может следовать готовым программам, не возглавляя их",
			"Подходят упражнения средней интенсивности",
			"Требуется сбалансированное и регулярное питание",
		}},
		{20, "Низкая энергия — нужны поддержка и восстановление", [4]string{
			"Нужны мягкие, восстановительные занятия",
			"Следует избегать интенсивных физических нагрузок",
			"Подходят йога, растяжка и лёгкие прогулки",
			"Требуется питательная и легкоусвояемая еда",
		}},
		{0, "Минимальная энергия — приоритет отдыху", [4]string{
			"Нужен полноценный отдых и только очень мягкая активность",
			"Следует избегать любой требовательной физической активности",
			"Только расслабление и пассивное восстановление",
			"Требуется согревающая еда и поддерживающие добавки",
		}},
	},
	biorhythm.Emotional: {
		{80, "Отличное эмоциональное состояние — естественный мотиватор группы", [4]string{
			"Нужны яркое эмоциональное выражение и глубокое общение",
			"Может быть главным мотиватором и душой группы",
			"Требует совместных занятий и праздников",
			"Нужно направить позитивную энергию в общие проекты",
		}},
		{60, "Хорошее эмоциональное состояние — помощник в общении", [4]string{
			"Нужны активное общение и эмоциональное выражение",
			"Может поддерживать разговоры и групповые занятия",
			"Подходят творческие и совместные занятия",
			"Требует признания и позитивной обратной связи",
		}},
		{40, "Стабильное эмоциональное состояние — уравновешенный участник", [4]string{
			"Нужен баланс между общением и личным временем",
			"Может участвовать в групповых занятиях без давления",
			"Подходят спокойные беседы и тихие занятия",
			"Требует мягкой эмоциональной поддержки и понимания",
		}},
		{20, "Хрупкое эмоциональное состояние — нужны поддержка и забота", [4]string{
			"Нужна постоянная эмоциональная поддержка и успокаивающие занятия",
			"Следует избегать стрессовых и конфликтных ситуаций",
			"Подходят забота о себе и расслабление",
			"Требует понимания, терпения и личного пространства",
		}},
		{0, "Очень низкое эмоциональное состояние — приоритет эмоциональному восстановлению", [4]string{
			"Нужна интенсивная эмоциональная поддержка и очень мягкие занятия",
			"Следует избегать любых эмоционально требовательных ситуаций",
			"Только забота о себе и эмоциональное восстановление",
			"Требует полного понимания и очень бережной обстановки",
		}},
	},
	biorhythm.Intellectual: {
		{80, "Максимальная умственная работоспособность — стратегический лидер", [4]string{
			"Нужны сложные умственные задачи и новаторские проекты",
			"Может вести планирование и принятие групповых решений",
			"Подходит решение сложных проблем и выработка стратегий",
			"Требует постоянной и разнообразной умственной стимуляции",
		}},
		{60, "Высокая умственная работоспособность — ключевой участник", [4]string{
			"Нужны сложные, но структурированные умственные задачи",
			"Может существенно помочь в групповом планировании",
			"Подходят анализ, организация и решение проблем",
			"Требует интересных проектов с понятными целями",
		}},
		{40, "Умеренная умственная работоспособность — надёжный исполнитель", [4]string{
			"Нужны умеренные и хорошо структурированные умственные задачи",
			"Может следовать готовым планам и предлагать идеи",
			"Подходят организованные задачи и постепенное обучение",
			"Требует ясных целей и помощи в сложных решениях",
		}},
		{20, "Низкая умственная работоспособность — нужна поддержка", [4]string{
			"Нужны умственный отдых и простые занятия",
			"Следует избегать сложных решений и умственного давления",
			"Подходят рутинные задачи и расслабляющие занятия",
			"Требует постоянной помощи в принятии решений",
		}},
		{0, "Минимальная умственная работоспособность — приоритет умственному отдыху", [4]string{
			"Нужен полный умственный отдых и очень простые занятия",
			"Следует избегать любой умственно требовательной активности",
			"Только автоматические занятия и умственное расслабление",
			"Требует полной поддержки в любых решениях",
		}},
	},
}

// lookupBand возвращает уровень значения: >=80, >=60, >=40, >=20, остальное
func lookupBand(dim biorhythm.Dimension, value int) band {
	bands := bandTables[dim]
	for _, b := range bands[:len(bands)-1] {
		if value >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}
