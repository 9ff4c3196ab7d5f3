package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunctSegmenter_FindEOS(t *testing.T) {
	p := NewPunctSegmenter()

	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"empty", "", nil},
		{"no terminator", "A.B.C", nil},
		{"two sentences", "こんにちは。ありがとう。", []int{6, 12}},
		{"terminator run", "わーい！！です", []int{5}},
		{"closing bracket", "「はい。」と言った。", []int{5, 10}},
		{"linebreak", "改行を\n含む文章です。", []int{4, 11}},
		{"terminator then linebreak", "はい。\nいいえ", []int{3, 4}},
		{"ascii", "Really? Yes!", []int{7, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.FindEOS(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, ValidateBoundaries(got, len([]rune(tt.input))))
		})
	}
}

func TestPunctSegmenter_Layers(t *testing.T) {
	p := NewPunctSegmenter()
	seg, err := p.Segment("はい。\nいいえ？")
	require.NoError(t, err)
	require.NoError(t, ValidateSegmentation(seg, 8))

	require.Len(t, seg.Layers, 2)
	assert.Equal(t, BasicRuleLayer, seg.Layers[0].Name)
	assert.Equal(t, LinebreakLayer, seg.Layers[1].Name)

	basic := seg.Layers[0].Spans
	require.Len(t, basic, 2)
	assert.Equal(t, Span{RuleName: BasicRuleLayer, Start: 2, End: 3, SplitType: "symbol", SplitValue: "。"}, basic[0])

	final := seg.Layers[1].Spans
	require.Len(t, final, 3)
	var ends []int
	for _, s := range final {
		ends = append(ends, s.End)
	}
	assert.Equal(t, []int{3, 4, 8}, ends, "final layer is cumulative and ordered by end")
	assert.Equal(t, LinebreakLayer, final[1].RuleName)
	assert.Equal(t, BasicRuleLayer, final[2].RuleName)
	assert.Equal(t, []int{3, 4, 8}, seg.Boundaries)
}

func TestValidateBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		boundaries []int
		length     int
		wantErr    bool
	}{
		{"empty", nil, 0, false},
		{"valid", []int{2, 5}, 5, false},
		{"zero", []int{0, 5}, 5, true},
		{"past end", []int{6}, 5, true},
		{"not increasing", []int{3, 3}, 5, true},
		{"decreasing", []int{4, 2}, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoundaries(tt.boundaries, tt.length)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrContractViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSegmentation(t *testing.T) {
	ok := Segmentation{Layers: []Layer{{Name: "L", Spans: []Span{{Start: 0, End: 3}}}}}
	assert.NoError(t, ValidateSegmentation(ok, 3))

	tests := []struct {
		name string
		seg  Segmentation
	}{
		{"unnamed", Segmentation{Layers: []Layer{{}}}},
		{"negative start", Segmentation{Layers: []Layer{{Name: "L", Spans: []Span{{Start: -1, End: 1}}}}}},
		{"inverted", Segmentation{Layers: []Layer{{Name: "L", Spans: []Span{{Start: 2, End: 1}}}}}},
		{"past end", Segmentation{Layers: []Layer{{Name: "L", Spans: []Span{{Start: 0, End: 4}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSegmentation(tt.seg, 3)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}
