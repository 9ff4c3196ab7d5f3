package segment

import (
	"errors"
	"fmt"
)

// ErrContractViolation is returned when a collaborator reports offsets that
// cannot be applied to the text it was given.
var ErrContractViolation = errors.New("collaborator contract violation")

// ValidateBoundaries checks that boundaries are strictly increasing and each
// lies in (0, length].
func ValidateBoundaries(boundaries []int, length int) error {
	prev := 0
	for i, b := range boundaries {
		if b <= 0 || b > length {
			return fmt.Errorf("%w: boundary %d at index %d outside (0, %d]", ErrContractViolation, b, i, length)
		}
		if i > 0 && b <= prev {
			return fmt.Errorf("%w: boundary %d at index %d does not follow %d", ErrContractViolation, b, i, prev)
		}
		prev = b
	}
	return nil
}

// ValidateSegmentation checks every span of every layer against [0, length].
func ValidateSegmentation(seg Segmentation, length int) error {
	for _, layer := range seg.Layers {
		if layer.Name == "" {
			return fmt.Errorf("%w: unnamed layer", ErrContractViolation)
		}
		for i, s := range layer.Spans {
			if s.Start < 0 || s.Start > s.End || s.End > length {
				return fmt.Errorf("%w: layer %q span %d has offsets [%d, %d) outside [0, %d]",
					ErrContractViolation, layer.Name, i, s.Start, s.End, length)
			}
		}
	}
	return nil
}
