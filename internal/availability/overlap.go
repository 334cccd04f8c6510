package availability

import (
	"cmp"
	"time"
)

// Interval полуоткрытый интервал [Start, End)
type Interval[T cmp.Ordered] struct {
	Start T
	End   T
}

// Overlaps проверяет пересечение полуоткрытых интервалов; касание концами пересечением не считается
func Overlaps[T cmp.Ordered](aStart, aEnd, bStart, bEnd T) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// AnyOverlap проверяет, пересекается ли кандидат хотя бы с одним интервалом
func AnyOverlap[T cmp.Ordered](candidate Interval[T], intervals []Interval[T]) bool {
	for _, iv := range intervals {
		if Overlaps(candidate.Start, candidate.End, iv.Start, iv.End) {
			return true
		}
	}
	return false
}

// TimeInterval переводит пару моментов в интервал секунд Unix
func TimeInterval(start, end time.Time) Interval[int64] {
	return Interval[int64]{Start: start.Unix(), End: end.Unix()}
}
