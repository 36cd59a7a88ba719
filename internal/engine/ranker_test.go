package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankElectivesPrefersSimilarDescriptions(t *testing.T) {
	descriptions := map[int64]string{
		1: "introduction to programming with algorithms and data structures",
		2: "advanced algorithms graph theory and data structures",
		3: "renaissance painting and sculpture in european art",
	}

	ranked := RankElectives([]int64{3, 2}, []int64{1}, descriptions)
	assert.Equal(t, []int64{2, 3}, ranked, "the algorithms elective should outrank art history")
}

func TestRankElectivesDegenerateCasesKeepInputOrder(t *testing.T) {
	descriptions := map[int64]string{1: "databases", 2: "networks"}

	assert.Equal(t, []int64{2, 1}, RankElectives([]int64{2, 1}, nil, descriptions))
	assert.Equal(t, []int64{2, 1}, RankElectives([]int64{2, 1}, []int64{9}, map[int64]string{}))
	assert.Empty(t, RankElectives(nil, []int64{1}, descriptions))

	// Punctuation-only descriptions produce no vocabulary.
	junk := map[int64]string{1: "...", 2: "!!", 3: "??"}
	assert.Equal(t, []int64{2, 3}, RankElectives([]int64{2, 3}, []int64{1}, junk))
}

func TestRankElectivesDoesNotMutateInput(t *testing.T) {
	descriptions := map[int64]string{
		1: "linear algebra and matrix computation",
		2: "matrix computation numerical methods",
		3: "medieval literature",
	}
	electives := []int64{3, 2}

	RankElectives(electives, []int64{1}, descriptions)
	assert.Equal(t, []int64{3, 2}, electives)
}

func TestRankElectivesStableForTiedScores(t *testing.T) {
	descriptions := map[int64]string{
		1: "operating systems",
		2: "baroque music history",
		3: "modern dance theory",
	}

	// Both electives share no vocabulary with the completed course, so both
	// score zero and the input order must survive.
	ranked := RankElectives([]int64{2, 3}, []int64{1}, descriptions)
	assert.Equal(t, []int64{2, 3}, ranked)
}

func TestSimilarityScoreDegradesToZero(t *testing.T) {
	assert.Zero(t, SimilarityScore("databases", nil))
	assert.Zero(t, SimilarityScore("", []string{"databases"}))
	assert.Zero(t, SimilarityScore("..", []string{"!!"}))

	score := SimilarityScore(
		"relational databases and query optimization",
		[]string{"query optimization in relational databases"},
	)
	assert.Greater(t, score, 0.5)
	assert.LessOrEqual(t, score, 1.0)
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := tokenize("Go, C and C++ are languages; x_1 counts")
	assert.Equal(t, []string{"go", "and", "are", "languages", "x_1", "counts"}, tokens)
}
