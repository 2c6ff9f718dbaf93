package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
	"biobot/internal/calendar"
	"biobot/internal/config"
	"biobot/internal/excel"
)

// options общие флаги всех команд
type options struct {
	now    string
	asJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "biocli",
		Short:         "Расчёт биоритмов без Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.now, "now", "", "текущая дата (ГГГГ-ММ-ДД или ДД.ММ.ГГГГ), по умолчанию сегодня")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "вывод в JSON")

	root.AddCommand(
		newChartCmd(opts),
		newCompareCmd(opts),
		newSmartCmd(opts),
		newICSCmd(opts),
		newXLSXCmd(opts),
	)
	return root
}

// resolveNow возвращает --now или текущую дату в часовом поясе TIMEZONE
func (o *options) resolveNow() (time.Time, error) {
	if o.now != "" {
		return biorhythm.ParseDate("now", o.now)
	}
	cfg, err := config.LoadBase()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// resolveDate возвращает --date, если задан, иначе now
func resolveDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	return biorhythm.ParseDate("date", value)
}

// parsePeople разбирает значения --person в формате имя=дата
func parsePeople(values []string) ([]biorhythm.Profile, error) {
	profiles := make([]biorhythm.Profile, 0, len(values))
	for i, raw := range values {
		name, date, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--person %q: ожидается имя=дата", raw)
		}
		p := biorhythm.Profile{
			ID:        fmt.Sprintf("p%d", i+1),
			Name:      name,
			BirthDate: strings.TrimSpace(date),
		}
		if _, err := p.ParseBirthDate(); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// plain убирает разметку **жирный**
func plain(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

func newChartCmd(opts *options) *cobra.Command {
	var birth, name, date string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Биоритмы одного человека за 15 дней",
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := opts.resolveNow()
			if err != nil {
				return err
			}
			day, err := resolveDate(date, now)
			if err != nil {
				return err
			}

			p := biorhythm.Profile{ID: "p1", Name: name, BirthDate: birth}
			res, err := biorhythm.CalculateSingle(p, day)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			state := analysis.StateOf(res.Today, &res.Yesterday)
			fmt.Fprintf(out, "%s, %s\n", name, biorhythm.ShortLabel(day))
			for _, dim := range biorhythm.Dimensions {
				s := state.Get(dim)
				fmt.Fprintf(out, "  %-16s %+4d%%  %s  %s\n", dim.Title(), s.Value, s.Trend, s.Description)
			}
			fmt.Fprintln(out)
			for _, point := range res.Series {
				fmt.Fprintf(out, "%-7s %+4d %+4d %+4d\n", point.Label, point.Physical, point.Emotional, point.Intellectual)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&birth, "birth", "", "дата рождения")
	cmd.Flags().StringVar(&name, "name", "Вы", "имя")
	cmd.Flags().StringVar(&date, "date", "", "день расчёта, по умолчанию --now")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	var people []string
	var dimension, date string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Сравнение нескольких людей по одному циклу",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := parsePeople(people)
			if err != nil {
				return err
			}
			dim, err := biorhythm.ParseDimension(dimension)
			if err != nil {
				return err
			}
			now, err := opts.resolveNow()
			if err != nil {
				return err
			}
			ref, err := resolveDate(date, now)
			if err != nil {
				return err
			}

			res, err := biorhythm.CalculateMulti(profiles, ref, now, dim)
			if err != nil {
				return err
			}
			recs := analysis.CombinedRecommendations(res.People, dim, ref, now)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					biorhythm.MultiResult
					Recommendations []string `json:"recommendations"`
				}{res, recs})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Цикл: %s\n", dim.Title())
			fmt.Fprintf(out, "%-7s", "")
			for _, person := range res.People {
				fmt.Fprintf(out, " %8s", person.Profile.Name)
			}
			fmt.Fprintln(out)
			for _, point := range res.Combined {
				mark := " "
				if point.IsSelected || (point.IsToday && biorhythm.SameDay(ref, now)) {
					mark = "*"
				}
				fmt.Fprintf(out, "%-7s", point.Label)
				for _, person := range res.People {
					fmt.Fprintf(out, " %+8d", point.People[person.Profile.ID].Value)
				}
				fmt.Fprintln(out, " "+mark)
			}
			if len(recs) > 0 {
				fmt.Fprintln(out)
				for _, r := range recs {
					fmt.Fprintln(out, plain(r))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&people, "person", nil, "человек в формате имя=дата (можно несколько)")
	cmd.Flags().StringVar(&dimension, "type", string(biorhythm.Physical), "цикл: physical, emotional, intellectual")
	cmd.Flags().StringVar(&date, "date", "", "дата сравнения, по умолчанию --now")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func newSmartCmd(opts *options) *cobra.Command {
	var people []string
	var category string

	cmd := &cobra.Command{
		Use:   "smart",
		Short: "Умные рекомендации для группы",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := parsePeople(people)
			if err != nil {
				return err
			}
			var only analysis.Category
			if category != "" {
				if only, err = analysis.ParseCategory(category); err != nil {
					return err
				}
			}
			now, err := opts.resolveNow()
			if err != nil {
				return err
			}

			res, err := biorhythm.CalculateMulti(profiles, now, now, biorhythm.Physical)
			if err != nil {
				return err
			}

			recs := make([]analysis.SmartRecommendation, 0, len(analysis.Categories))
			for _, rec := range analysis.SmartRecommendations(res.People) {
				if only == "" || rec.Category == only {
					recs = append(recs, rec)
				}
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), recs)
			}

			out := cmd.OutOrStdout()
			for i, rec := range recs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", rec.Title)
				if rec.Fusion.Strategy != "" {
					fmt.Fprintln(out, plain(rec.Fusion.Strategy))
				}
				for _, a := range rec.Fusion.Adaptations {
					fmt.Fprintln(out, "  - "+plain(a))
				}
				for _, a := range rec.Fusion.SharedActivities {
					fmt.Fprintln(out, "  + "+plain(a))
				}
				for _, p := range rec.Profiles {
					for _, tip := range rec.Fusion.PersonalizedTips[p.PersonID] {
						fmt.Fprintln(out, "  > "+plain(tip))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&people, "person", nil, "человек в формате имя=дата (можно несколько)")
	cmd.Flags().StringVar(&category, "category", "", "nutrition, exercise, creativity или wellness")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func newICSCmd(opts *options) *cobra.Command {
	var birth, name, output string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Календарь биоритмов на 31 день в формате iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := opts.resolveNow()
			if err != nil {
				return err
			}
			p := biorhythm.Profile{ID: "p1", Name: name, BirthDate: birth}
			res, err := biorhythm.CalculateMulti([]biorhythm.Profile{p}, now, now, biorhythm.Physical)
			if err != nil {
				return err
			}

			ics := calendar.WindowICS(p, res.People[0].Series, now)
			if output == "" || output == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), ics)
				return err
			}
			if err := os.WriteFile(output, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("ошибка записи %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📆 Сохранено: %s (%d дней)\n", output, len(res.People[0].Series))
			return nil
		},
	}
	cmd.Flags().StringVar(&birth, "birth", "", "дата рождения")
	cmd.Flags().StringVar(&name, "name", "Биоритмы", "имя")
	cmd.Flags().StringVarP(&output, "output", "o", "", "файл .ics, по умолчанию stdout")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}

func newXLSXCmd(opts *options) *cobra.Command {
	var people []string
	var dimension, date, output string

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Таблица Excel со сравнением и графиками",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := parsePeople(people)
			if err != nil {
				return err
			}
			dim, err := biorhythm.ParseDimension(dimension)
			if err != nil {
				return err
			}
			now, err := opts.resolveNow()
			if err != nil {
				return err
			}
			ref, err := resolveDate(date, now)
			if err != nil {
				return err
			}

			res, err := biorhythm.CalculateMulti(profiles, ref, now, dim)
			if err != nil {
				return err
			}
			buf, err := excel.BiorhythmWorkbook(res)
			if err != nil {
				return err
			}

			if output == "" {
				output = excel.WorkbookFilename(ref)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("ошибка записи %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📊 Сохранено: %s (%d чел.)\n", output, len(profiles))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&people, "person", nil, "человек в формате имя=дата (можно несколько)")
	cmd.Flags().StringVar(&dimension, "type", string(biorhythm.Physical), "цикл: physical, emotional, intellectual")
	cmd.Flags().StringVar(&date, "date", "", "дата сравнения, по умолчанию --now")
	cmd.Flags().StringVarP(&output, "output", "o", "", "файл .xlsx, по умолчанию biorhythm-ГГГГММДД.xlsx")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}
