package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	assert.False(t, Overlaps(9.0, 10.0, 10.0, 11.0), "touching boundary")
	assert.False(t, Overlaps(10.0, 11.0, 9.0, 10.0), "touching boundary reversed")
	assert.True(t, Overlaps(9.0, 10.0, 9.30, 10.30))
	assert.True(t, Overlaps(9.0, 12.0, 10.0, 11.0), "containment")
	assert.True(t, Overlaps(9.0, 10.0, 9.0, 10.0), "identical")
	assert.False(t, Overlaps(9.0, 9.30, 11.0, 12.0))
}

func TestAnyOverlap(t *testing.T) {
	busy := []Interval[int]{{Start: 600, End: 630}, {Start: 720, End: 780}}

	assert.True(t, AnyOverlap(Interval[int]{Start: 615, End: 645}, busy))
	assert.False(t, AnyOverlap(Interval[int]{Start: 630, End: 720}, busy))
	assert.False(t, AnyOverlap(Interval[int]{Start: 0, End: 60}, nil))
}

func TestTimeInterval(t *testing.T) {
	day := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	a := TimeInterval(day.Add(10*time.Hour), day.Add(10*time.Hour+30*time.Minute))
	b := TimeInterval(day.Add(10*time.Hour+15*time.Minute), day.Add(10*time.Hour+45*time.Minute))
	c := TimeInterval(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour))

	assert.True(t, AnyOverlap(b, []Interval[int64]{a}))
	assert.False(t, AnyOverlap(c, []Interval[int64]{a}))
}
