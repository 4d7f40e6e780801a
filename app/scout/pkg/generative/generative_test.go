package generative

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validItem = `{"id":"g1","industry":"Legal","title":"t","intensity":"Critical","description":"d",
	"reasoning":"r","statistic":"s","solution_idea":"i",
	"swot":{"strengths":["a"],"weaknesses":["b"],"opportunities":["c"],"threats":["d"]}}`

func TestPrompt(t *testing.T) {
	assert.Contains(t, Prompt("Pet Care"), "specifically for the Pet Care industry")
	assert.Contains(t, Prompt(""), "various high-value industries")
	assert.Contains(t, Prompt("All"), "various high-value industries")
	assert.True(t, strings.HasPrefix(Prompt(""), "Generate 5 "))
}

func TestParseResponse_Valid(t *testing.T) {
	points, err := ParseResponse("```json\n[" + validItem + "," + validItem + "]\n```")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "g1", points[0].ID)
	assert.Equal(t, "i", points[0].SolutionIdea)
	assert.Equal(t, []string{"d"}, points[0].SWOT.Threats)
}

func TestParseResponse_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "   ", ErrEmptyResponse},
		{"empty array", "[]", ErrEmptyResponse},
		{"not json", "Sure! Here are five ideas", ErrSchema},
		{"object instead of array", validItem, ErrSchema},
		{"missing field", `[{"id":"1","industry":"x","title":"t","intensity":"Critical","description":"d","reasoning":"r","statistic":"s","swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]}}]`, ErrSchema},
		{"missing swot list", `[{"id":"1","industry":"x","title":"t","intensity":"Critical","description":"d","reasoning":"r","statistic":"s","solution_idea":"i","swot":{"strengths":[],"weaknesses":[],"opportunities":[]}}]`, ErrSchema},
		{"null swot", `[{"id":"1","industry":"x","title":"t","intensity":"Critical","description":"d","reasoning":"r","statistic":"s","solution_idea":"i","swot":null}]`, ErrSchema},
		{"numeric id", `[{"id":1,"industry":"x","title":"t","intensity":"Critical","description":"d","reasoning":"r","statistic":"s","solution_idea":"i","swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]}}]`, ErrSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.text)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := error(&Error{Provider: "gemini", Err: ErrSchema})
	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "gemini")
}
