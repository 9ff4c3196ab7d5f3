package bunkai

import "unicode/utf8"

const advisoryMessage = "large input; segmentation may use large memory for intermediate annotations"

// Advisory reports that an input is large enough for its intermediate
// annotations to use a lot of memory. It never changes any result.
type Advisory struct {
	Characters     int
	EstimatedBytes int
	SizeMiB        float64
}

// estimateBytes assumes one byte per character for ASCII text and three otherwise.
func estimateBytes(text string, length int) int {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return 3 * length
		}
	}
	return length
}

func (d *Disambiguator) adviseLargeInput(text string, length int) {
	if length == 0 {
		return
	}
	estimated := estimateBytes(text, length)
	if estimated < d.threshold {
		return
	}

	a := Advisory{
		Characters:     length,
		EstimatedBytes: estimated,
		SizeMiB:        float64(estimated) / (1024 * 1024),
	}
	d.logger.Warn(advisoryMessage,
		"size_mib", a.SizeMiB,
		"characters", a.Characters,
	)
	if d.onAdvisory != nil {
		d.onAdvisory(a)
	}
}
