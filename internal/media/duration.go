package media

import (
	"fmt"
	"math"
)

// FormatDuration renders a duration in seconds as HH:MM:SS, rounding to
// the nearest second. Minutes and seconds are zero-padded to two digits;
// the hour field grows past two digits rather than wrapping.
func FormatDuration(seconds float64) string {
	total := int64(math.Round(seconds))
	if total < 0 {
		total = 0
	}

	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
