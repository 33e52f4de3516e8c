package help

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"index", nil},
		{"commands", []string{"commands"}},
		{"types_and_passes", []string{"types", "PASSES"}},
		{"unknown_topic", []string{"bogus"}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(Render(tt.args)))
		})
	}
}

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{"commands", "passes", "references", "types"}, Topics())
	for _, topic := range Topics() {
		assert.NotContains(t, Render([]string{topic}), "no help for", topic)
	}
}

func TestShellExamplesQuoteMarker(t *testing.T) {
	for _, topic := range Topics() {
		for _, line := range strings.Split(Render([]string{topic}), "\n") {
			if strings.Contains(line, "sqlfrag compile") {
				assert.NotContains(t, line, " => ", topic)
			}
		}
	}
}

func TestRenderRejectsPaths(t *testing.T) {
	assert.Contains(t, Render([]string{"../help.go"}), "no help for")
}

func TestRendererImplementsHook(t *testing.T) {
	var r Renderer
	assert.Equal(t, Render([]string{"types"}), r.Render([]string{"types"}))
}

func TestPretty(t *testing.T) {
	out, err := Pretty("# Title\n\nbody text\n", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}
