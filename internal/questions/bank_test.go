package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnicalByTopic(t *testing.T) {
	items := Technical("Databases", "Medium")
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "Databases", it.Category)
		assert.Equal(t, "medium", it.Difficulty)
		assert.NotEmpty(t, it.HintPoints)
	}
}

func TestTechnicalAllTopics(t *testing.T) {
	items := Technical("", "easy")
	assert.Len(t, items, 2*len(Topics))
	assert.Equal(t, Topics[0], items[0].Category)
}

func TestFallbackWrapsByOrdinal(t *testing.T) {
	assert.Equal(t, HRFallback[0], Fallback(true, 1))
	assert.Equal(t, HRFallback[0], Fallback(true, len(HRFallback)+1))
	assert.Equal(t, technicalFallback[1], Fallback(false, 2))
	assert.Equal(t, technicalFallback[0], Fallback(false, 0))
}

func TestRemainingSkipsAsked(t *testing.T) {
	left := Remaining(HRCommon, []string{"Tell me about yourself.", " Why should we hire you? "})
	require.Len(t, left, 3)
	assert.Equal(t, "What are your strengths and weaknesses?", left[0].Text)
}
