package loc

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `package main

// line comment
/* one line block */
/*
 * multi line
 */
func main() {
	x := 1 // trailing comment counts as code

}
`

func TestCountReader(t *testing.T) {
	c, err := CountReader(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 11, c.Total)
	assert.Equal(t, 2, c.Blank)
	assert.Equal(t, 5, c.Comments)
	assert.Equal(t, 4, c.Code)
}

func TestCountReader_BlockOpenedAfterCode(t *testing.T) {
	c, err := CountReader(strings.NewReader("x := 1\n/* a\nb */\ny := 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Code)
	assert.Equal(t, 2, c.Comments)
}

func TestCountDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n\nvar x = 1\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.go"), []byte("// doc\npackage b\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "c.go"), []byte("package hidden\n"), 0644))

	c, err := CountDir(root, ".go", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Files)
	assert.Equal(t, 5, c.Total)
	assert.Equal(t, 3, c.Code)
	assert.Equal(t, 1, c.Comments)
	assert.Equal(t, 1, c.Blank)
	assert.InDelta(t, 60.0, c.CodePercent(), 0.001)
	assert.InDelta(t, 20.0, c.CommentPercent(), 0.001)
}

func TestCountDir_MissingRoot(t *testing.T) {
	_, err := CountDir(filepath.Join(t.TempDir(), "missing"), ".go", nil)
	assert.Error(t, err)
}

func TestCounts_Empty(t *testing.T) {
	var c Counts
	assert.Equal(t, 0.0, c.CodePercent())
	assert.Equal(t, 0.0, c.CommentPercent())
}

func TestCompute(t *testing.T) {
	e := Compute(100, DefaultScale, DefaultMonthlySalary)

	assert.Equal(t, 10000, e.ScaledLines)
	assert.InDelta(t, 10.0, e.KLOC, 1e-9)

	wantEffort := 2.4 * math.Pow(10, 1.05)
	wantTime := 2.5 * math.Pow(wantEffort, 0.38)
	assert.InDelta(t, wantEffort, e.Effort, 1e-9)
	assert.InDelta(t, wantTime, e.DevTime, 1e-9)
	assert.InDelta(t, wantEffort/wantTime, e.People, 1e-9)
	assert.InDelta(t, 10000/wantEffort, e.Productivity, 1e-9)
	assert.InDelta(t, DefaultMonthlySalary*math.Ceil(wantEffort/wantTime)*wantTime, e.TotalCost, 1e-3)

	assert.Equal(t, math.Ceil(wantTime/2), e.ReducedMonths)
	assert.InDelta(t, wantEffort/e.ReducedMonths, e.ReducedPeople, 1e-9)
	assert.Equal(t, int(math.Ceil(e.People)), e.TeamSize())
}

func TestCompute_Zero(t *testing.T) {
	e := Compute(0, DefaultScale, DefaultMonthlySalary)
	assert.Equal(t, 0.0, e.Effort)
	assert.Equal(t, 0.0, e.TotalCost)
	assert.False(t, math.IsNaN(e.Productivity))
}

func TestWriteEstimate(t *testing.T) {
	var buf strings.Builder
	e := Compute(100, DefaultScale, DefaultMonthlySalary)
	require.NoError(t, WriteEstimate(&buf, e))

	out := buf.String()
	assert.Contains(t, out, "COCOMO RESULTS - ORGANIC MODE")
	assert.Contains(t, out, "- Scaled LOC:               10000")
	assert.Contains(t, out, "- Monthly salary:           $2,000,000")
	assert.Contains(t, out, "REDUCED SCHEDULE")
}

func TestWriteEstimate_ZeroSkipsReducedSchedule(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteEstimate(&buf, Compute(0, DefaultScale, DefaultMonthlySalary)))
	assert.NotContains(t, buf.String(), "REDUCED SCHEDULE")
}

func TestWriteCounts(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCounts(&buf, Counts{Files: 1, Total: 4, Code: 2, Comments: 1, Blank: 1}))
	assert.Contains(t, buf.String(), "- Code lines:     2 (50.00%)")
	assert.Contains(t, buf.String(), "- Comment lines:  1 (25.00%)")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultReportPath)
	require.NoError(t, WriteFile(path, Compute(10, DefaultScale, DefaultMonthlySalary)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LINES OF CODE:")

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "x.txt"), Estimate{})
	assert.Error(t, err)
}
