package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biobot/internal/biorhythm"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChart(t *testing.T) {
	out, err := execute(t, "chart", "--birth", "2026-10-04", "--name", "Анна", "--now", "2026-10-18")
	require.NoError(t, err)

	assert.Contains(t, out, "Анна, 18 окт")
	assert.Contains(t, out, "-63%")
	assert.Contains(t, out, "+46%")
	assert.Contains(t, out, "4 окт")
	assert.Equal(t, 15, strings.Count(out, " окт "))
}

func TestChartJSON(t *testing.T) {
	out, err := execute(t, "chart", "--birth", "2026-10-04", "--now", "2026-10-18", "--json")
	require.NoError(t, err)

	var res biorhythm.SingleResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, biorhythm.Values{Physical: -63, Emotional: 0, Intellectual: 46}, res.Today)
	assert.Len(t, res.Series, 15)
	assert.True(t, res.Series[14].IsToday)
}

func TestChartRequiresBirth(t *testing.T) {
	_, err := execute(t, "chart", "--now", "2026-10-18")
	assert.Error(t, err)

	_, err = execute(t, "chart", "--birth", "31.02.1990", "--now", "2026-10-18")
	require.Error(t, err)
	assert.True(t, biorhythm.IsConfigurationError(err))
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare",
		"--person", "Анна=2026-10-04",
		"--person", "Борис=02.11.1988",
		"--type", "emotional",
		"--now", "2026-10-18",
		"--date", "2026-10-19",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Цикл: эмоциональный")
	assert.Contains(t, out, "Анна")
	assert.Contains(t, out, "Борис")
	assert.Contains(t, out, "19 окт")
	assert.Contains(t, out, "в понедельник, 19 октября")
	assert.NotContains(t, out, "**")
}

func TestCompareJSON(t *testing.T) {
	out, err := execute(t, "compare", "--person", "Анна=2026-10-04", "--now", "2026-10-18", "--json")
	require.NoError(t, err)

	var res struct {
		Combined        []biorhythm.CombinedPoint `json:"combinedChartData"`
		Recommendations []string                  `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Combined, 31)
	assert.Equal(t, -63, res.Combined[15].People["p1"].Value)
	assert.NotEmpty(t, res.Recommendations)
}

func TestCompareInvalidPerson(t *testing.T) {
	_, err := execute(t, "compare", "--person", "Анна", "--now", "2026-10-18")
	assert.ErrorContains(t, err, "имя=дата")

	_, err = execute(t, "compare", "--person", "Анна=2026-10-04", "--type", "сон", "--now", "2026-10-18")
	assert.Error(t, err)
}

func TestSmart(t *testing.T) {
	out, err := execute(t, "smart",
		"--person", "Анна=2026-10-04",
		"--person", "Борис=2026-10-11",
		"--now", "2026-10-18",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "== "))
	assert.Contains(t, out, "> Анна: ")
	assert.Contains(t, out, "> Борис: ")

	out, err = execute(t, "smart", "--person", "Анна=2026-10-04", "--category", "творчество", "--now", "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "== "))

	_, err = execute(t, "smart", "--person", "Анна=2026-10-04", "--category", "сон", "--now", "2026-10-18")
	assert.Error(t, err)
}

func TestICS(t *testing.T) {
	out, err := execute(t, "ics", "--birth", "12.04.1991", "--name", "Анна", "--now", "2026-10-18")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 31, strings.Count(out, "BEGIN:VEVENT"))

	path := filepath.Join(t.TempDir(), "bio.ics")
	out, err = execute(t, "ics", "--birth", "12.04.1991", "--now", "2026-10-18", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "31 дней")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "END:VCALENDAR")
}

func TestParsePeople(t *testing.T) {
	profiles, err := parsePeople([]string{"Анна = 2026-10-04", "Борис=02.11.1988"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Анна", profiles[0].Name)
	assert.Equal(t, "2026-10-04", profiles[0].BirthDate)
	assert.Equal(t, "p2", profiles[1].ID)

	_, err = parsePeople([]string{"=2026-10-04"})
	assert.Error(t, err)
}

func TestXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bio.xlsx")
	out, err := execute(t, "xlsx",
		"--person", "Анна=2026-10-04",
		"--person", "Борис=02.11.1988",
		"--now", "2026-10-18",
		"-o", path,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "2 чел.")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
