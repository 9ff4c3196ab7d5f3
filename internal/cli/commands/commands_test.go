package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bunkai/internal/cli/config"
	"github.com/leapstack-labs/bunkai/internal/cli/testutil"
)

func TestNewSplitCommand(t *testing.T) {
	cmd := NewSplitCommand()

	assert.Equal(t, "split", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewLayersCommand(t *testing.T) {
	cmd := NewLayersCommand()

	assert.Equal(t, "layers", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	// Note: --layers and --output are global persistent flags on root, not local
}

// execute runs cmd over stdin with configuration taken from the given
// BUNKAI_* environment variables.
func execute(t *testing.T, cmd *cobra.Command, stdin string, env map[string]string) (string, error) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	res, err := testutil.RunCommand(t, cmd, stdin)
	return res.Output(), err
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		env   map[string]string
		want  string
	}{
		{"two sentences", "こんにちは。ありがとう。\n", nil, "こんにちは。│ありがとう。\n"},
		{"placeholder", "改行を▁含む文章です。\n", nil, "改行を▁│含む文章です。\n"},
		{"crlf", "はい。\r\nいいえ。\r\n", nil, "はい。\nいいえ。\n"},
		{"single worker", "一。二。\n三。\n", map[string]string{"BUNKAI_WORKERS": "1"}, "一。│二。\n三。\n"},
		{"many workers", "一。\n二。\n三。\n", map[string]string{"BUNKAI_WORKERS": "16"}, "一。\n二。\n三。\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewSplitCommand(), tt.input, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSplit_Morph(t *testing.T) {
	out, err := execute(t, NewSplitCommand(), "改行▁です。\n", map[string]string{"BUNKAI_MA": "true"})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"改行\t名詞,一般,*,*,改行",
		"▁\t記号,空白,*,*,▁",
		"EOS",
		"です\t名詞,一般,*,*,です",
		"。\t記号,句点,*,*,。",
		"EOS",
	}, "\n")+"\n", out)
}

func TestSplit_MorphEmptyLine(t *testing.T) {
	out, err := execute(t, NewSplitCommand(), "\n", map[string]string{"BUNKAI_MA": "true"})
	require.NoError(t, err)
	assert.Equal(t, "EOS\n", out)
}

func TestLayers_Text(t *testing.T) {
	out, err := execute(t, NewLayersCommand(), "はい。\nいいえ\n", map[string]string{"BUNKAI_LAYERS": "BasicRule"})
	require.NoError(t, err)
	assert.Equal(t, "1\tBasicRule\t1\n2\tBasicRule\t0\n", out)
}

func TestLayers_UnknownLayerIsIgnored(t *testing.T) {
	out, err := execute(t, NewLayersCommand(), "はい。\n", map[string]string{"BUNKAI_LAYERS": "NoSuchLayer"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLayers_TableEmptyInput(t *testing.T) {
	out, err := execute(t, NewLayersCommand(), "", map[string]string{"BUNKAI_OUTPUT": "table"})
	require.NoError(t, err)
	assert.Equal(t, "(0 lines)\n", out)
}

func TestLayers_Table(t *testing.T) {
	out, err := execute(t, NewLayersCommand(), "はい。\n", map[string]string{"BUNKAI_OUTPUT": "table"})
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	for _, want := range []string{"BasicRule", "MorphAnnotatorJanome", "LinebreakForceAnnotator", "(1 lines)"} {
		assert.Contains(t, out, want)
	}
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got, err := readLines(strings.NewReader(tt.input))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestHintIfTerminal_NotATerminal(t *testing.T) {
	buf := new(bytes.Buffer)
	hintIfTerminal(strings.NewReader("x"), buf)
	assert.Empty(t, buf.String())
}

func TestLayerOptions(t *testing.T) {
	assert.Nil(t, layerOptions(&config.Config{}).IncludeLayers)
	assert.Equal(t, []string{"BasicRule"}, layerOptions(&config.Config{Layers: []string{"BasicRule"}}).IncludeLayers)
}
