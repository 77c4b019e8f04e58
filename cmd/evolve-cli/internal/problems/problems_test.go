package problems

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	info, err := Get("queens")
	require.NoError(t, err)
	assert.Equal(t, "Eight Queens", info.Name)
	assert.NotEmpty(t, info.GeneSpace)
	assert.NotEmpty(t, info.Example)

	_, err = Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem 'nope' not found")
}

func TestListAll(t *testing.T) {
	assert.ElementsMatch(t, []string{"palette", "phrase", "queens"}, ListAll())
}

func TestBuildUnknownProblem(t *testing.T) {
	_, _, err := Build("zebra", BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem 'zebra' not found")
}

func TestBuildQueens(t *testing.T) {
	pool, factory, err := Build("queens", BuildOptions{})
	require.NoError(t, err)
	require.NoError(t, pool.Validate())
	assert.Len(t, pool, 8)

	// Each column owns a private allele range
	assert.Equal(t, "0:0", pool["q0"][0])
	assert.Equal(t, "3:7", pool["q3"][7])

	solution := map[string]string{
		"q0": "0:0", "q1": "1:4", "q2": "2:7", "q3": "3:5",
		"q4": "4:2", "q5": "5:6", "q6": "6:1", "q7": "7:3",
	}
	solved := factory(solution)
	assert.Equal(t, 0.0, solved.FitnessLevel())
	assert.Equal(t, "04752613", solved.Unique())
	assert.True(t, solved.CanSurvive())

	sameRow := map[string]string{
		"q0": "0:0", "q1": "1:0", "q2": "2:0", "q3": "3:0",
		"q4": "4:0", "q5": "5:0", "q6": "6:0", "q7": "7:0",
	}
	// 28 pairs all share a row; no diagonal can also fire on equal rows
	assert.Equal(t, -28.0, factory(sameRow).FitnessLevel())
}

func TestQueensBoardCachesAttrs(t *testing.T) {
	_, factory, err := Build("queens", BuildOptions{})
	require.NoError(t, err)

	genes := map[string]string{
		"q0": "0:0", "q1": "1:4", "q2": "2:7", "q3": "3:5",
		"q4": "4:2", "q5": "5:6", "q6": "6:1", "q7": "7:3",
	}
	board := factory(genes).(*queensBoard)
	board.CacheAttrs()

	// Gene writes after caching must not move the frozen attributes
	genes["q0"] = "0:7"
	assert.Equal(t, 0.0, board.FitnessLevel())
	assert.Equal(t, "04752613", board.Unique())
}

func TestFormatQueensBoard(t *testing.T) {
	rendered := FormatQueensBoard("04752613")

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, " Q . . . . . . .", lines[0])
	assert.Equal(t, 8, strings.Count(rendered, "Q"))
}

func TestBuildPhraseDefaults(t *testing.T) {
	pool, factory, err := Build("phrase", BuildOptions{})
	require.NoError(t, err)
	require.NoError(t, pool.Validate())
	assert.Len(t, pool, len("go fast"))
	assert.Len(t, pool["p0"], 27)

	genes := map[string]string{}
	for i, r := range "go fast" {
		genes[phraseGene(i)] = string(r)
	}
	perfect := factory(genes)
	assert.Equal(t, 7.0, perfect.FitnessLevel())
	assert.Equal(t, "go fast", perfect.Unique())

	optimum, known := Optimum("phrase", BuildOptions{})
	assert.True(t, known)
	assert.Equal(t, 7.0, optimum)
}

func TestBuildPhraseCustomTarget(t *testing.T) {
	pool, _, err := Build("phrase", BuildOptions{Target: "abc"})
	require.NoError(t, err)
	assert.Len(t, pool, 3)

	optimum, known := Optimum("phrase", BuildOptions{Target: "abc"})
	assert.True(t, known)
	assert.Equal(t, 3.0, optimum)
}

func TestBuildPhraseRejectsInvalidTarget(t *testing.T) {
	for _, target := range []string{"Upper", "dash-ed", "digits123"} {
		_, _, err := Build("phrase", BuildOptions{Target: target})
		require.Error(t, err, "target %q", target)
		assert.Contains(t, err.Error(), "lowercase letters")
	}
}

func TestBuildPalette(t *testing.T) {
	pool, factory, err := Build("palette", BuildOptions{})
	require.NoError(t, err)
	require.NoError(t, pool.Validate())
	assert.Equal(t, []string{"accent", "background", "border", "foreground"}, pool.Genes())

	contrasty := factory(map[string]string{
		"background": "black", "foreground": "white",
		"accent": "teal", "border": "gray",
	})
	assert.True(t, contrasty.CanSurvive())
	assert.InDelta(t, 2.65, contrasty.FitnessLevel(), 1e-9)
	assert.Equal(t, "black|white|teal|gray", contrasty.Unique())

	// Matching accent and border costs a full point
	repeated := factory(map[string]string{
		"background": "black", "foreground": "white",
		"accent": "gold", "border": "gold",
	})
	assert.InDelta(t, 1.85, repeated.FitnessLevel(), 1e-9)

	invisible := factory(map[string]string{
		"background": "white", "foreground": "white",
		"accent": "teal", "border": "gray",
	})
	assert.False(t, invisible.CanSurvive())
}

func TestBuildPaletteFromPoolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	content := "background: [black, white]\nforeground: [coral, teal]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pool, _, err := Build("palette", BuildOptions{PoolPath: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"background", "foreground"}, pool.Genes())
	assert.Equal(t, []string{"black", "white"}, pool["background"])
}

func TestBuildPaletteMissingPoolFile(t *testing.T) {
	_, _, err := Build("palette", BuildOptions{PoolPath: "/does/not/exist.yaml"})
	require.Error(t, err)
}

func TestOptimumUnknownForPalette(t *testing.T) {
	_, known := Optimum("palette", BuildOptions{})
	assert.False(t, known)
}
