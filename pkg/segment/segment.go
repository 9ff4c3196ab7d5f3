// Package segment defines the contract between the orchestrator and a
// boundary-detection engine, and the checks applied to what an engine returns.
package segment

// Span is one rule-tagged interval reported by a Segmenter.
// Offsets are character (rune) offsets into the segmented text.
type Span struct {
	RuleName   string
	Start      int
	End        int
	SplitType  string
	SplitValue string
}

// Layer is the named output of one rule pass.
type Layer struct {
	Name  string
	Spans []Span
}

// Segmentation is the full output of a Segmenter for one text.
type Segmentation struct {
	// Layers are in the order the rule passes ran.
	Layers []Layer
	// Boundaries are the final sentence boundaries, as FindEOS would return them.
	Boundaries []int
}

// Segmenter detects sentence boundaries.
//
// FindEOS returns strictly increasing offsets in (0, len], where len is the
// character length of text. Segment returns every rule layer; the end offsets
// of the last rule layer align with FindEOS.
type Segmenter interface {
	FindEOS(text string) ([]int, error)
	Segment(text string) (Segmentation, error)
}
