package counter

import (
	"iter"

	"SessionSpectra/internal/model"
)

// ScanBounds folds every interval of the sequence into a running time span:
// the minimum begin and maximum end observed. It never rejects an interval.
// If the sequence is empty the sentinel span is returned and the caller must
// treat it as the degenerate no-data case.
func ScanBounds(intervals iter.Seq[model.Interval]) model.TimeSpan {
	span := model.EmptyTimeSpan()
	for iv := range intervals {
		span = span.Extend(iv)
	}
	return span
}
