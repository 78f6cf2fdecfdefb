package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, startMin, endHour, endMin int) TimeInterval {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return TimeInterval{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestTimeInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{
			name: "partial overlap",
			a:    interval(10, 0, 11, 0),
			b:    interval(10, 30, 11, 30),
			want: true,
		},
		{
			name: "containment",
			a:    interval(10, 0, 12, 0),
			b:    interval(10, 30, 11, 0),
			want: true,
		},
		{
			name: "identical",
			a:    interval(10, 0, 11, 0),
			b:    interval(10, 0, 11, 0),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    interval(10, 0, 11, 0),
			b:    interval(11, 0, 12, 0),
			want: false,
		},
		{
			name: "touching endpoints reversed",
			a:    interval(11, 0, 12, 0),
			b:    interval(10, 0, 11, 0),
			want: false,
		},
		{
			name: "disjoint",
			a:    interval(10, 0, 11, 0),
			b:    interval(13, 0, 14, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	outer := interval(10, 0, 12, 0)

	assert.True(t, outer.Contains(interval(10, 0, 12, 0)))
	assert.True(t, outer.Contains(interval(10, 30, 11, 30)))
	assert.False(t, outer.Contains(interval(9, 30, 11, 0)))
	assert.False(t, outer.Contains(interval(11, 0, 12, 30)))
}

func TestTimeInterval_Clip(t *testing.T) {
	bounds := interval(10, 0, 12, 0)

	clipped := interval(9, 0, 11, 0).Clip(bounds)
	assert.Equal(t, interval(10, 0, 11, 0), clipped)

	// Fully outside bounds clips to an invalid interval
	outside := interval(13, 0, 14, 0).Clip(bounds)
	assert.False(t, outside.IsValid())
}
