package segment

import "sort"

// Layer names produced by PunctSegmenter.
const (
	BasicRuleLayer = "BasicRule"
	LinebreakLayer = "LinebreakForceAnnotator"
)

// PunctSegmenter splits after runs of sentence-final punctuation and at line
// breaks. It is a small stand-in for a real rule engine, used by the CLI and
// the tests; it applies no exception rules (numbers, face marks, quotes).
type PunctSegmenter struct{}

// NewPunctSegmenter creates a new PunctSegmenter.
func NewPunctSegmenter() *PunctSegmenter {
	return &PunctSegmenter{}
}

// FindEOS returns the end offsets of the final layer.
func (p *PunctSegmenter) FindEOS(text string) ([]int, error) {
	seg, err := p.Segment(text)
	if err != nil {
		return nil, err
	}
	return seg.Boundaries, nil
}

// Segment runs the punctuation pass followed by the line break pass. Each
// layer holds every boundary found so far, ordered by end offset.
func (p *PunctSegmenter) Segment(text string) (Segmentation, error) {
	runes := []rune(text)

	var basic []Span
	for i := 0; i < len(runes); {
		if !isTerminator(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isTerminator(runes[i]) {
			i++
		}
		for i < len(runes) && isCloser(runes[i]) {
			i++
		}
		basic = append(basic, Span{
			RuleName:   BasicRuleLayer,
			Start:      start,
			End:        i,
			SplitType:  "symbol",
			SplitValue: string(runes[start:i]),
		})
	}

	linebreak := make([]Span, len(basic), len(basic)+8)
	copy(linebreak, basic)
	for i, r := range runes {
		if r != '\n' {
			continue
		}
		linebreak = append(linebreak, Span{
			RuleName:   LinebreakLayer,
			Start:      i,
			End:        i + 1,
			SplitType:  "linebreak",
			SplitValue: "\n",
		})
	}
	sort.SliceStable(linebreak, func(i, j int) bool {
		return linebreak[i].End < linebreak[j].End
	})

	return Segmentation{
		Layers: []Layer{
			{Name: BasicRuleLayer, Spans: basic},
			{Name: LinebreakLayer, Spans: linebreak},
		},
		Boundaries: boundaries(linebreak),
	}, nil
}

// boundaries returns the sorted, distinct, non-zero end offsets of spans.
func boundaries(spans []Span) []int {
	var out []int
	for _, s := range spans {
		if s.End == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1] >= s.End {
			continue
		}
		out = append(out, s.End)
	}
	return out
}

func isTerminator(r rune) bool {
	switch r {
	case '。', '．', '！', '？', '!', '?':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '」', '』', '）', ')', '】', '”', '’', '"':
		return true
	}
	return false
}
