package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

func testMenu() []domain.Course {
	return []domain.Course{
		{ID: 1, ShopID: 10, Name: "ボディケア60分", Price: 6600, DurationMinutes: 60},
		{ID: 2, ShopID: 10, Name: "ボディケア90分", Price: 9900, DurationMinutes: 90},
	}
}

func testRules() domain.BookingRules {
	return domain.BookingRules{
		ShopID:               10,
		BaseBufferMinutes:    20,
		MaxExtensionMinutes:  60,
		ExtensionStepMinutes: 15,
	}
}

func TestComputeBookingTimes_CourseWithExtensionAndBuffer(t *testing.T) {
	start := at(5, 10, 0)

	// 60-minute course + 15-minute extension: service ends at +75m,
	// occupied interval adds the 20-minute buffer on top (+95m)
	times, err := ComputeBookingTimes(testMenu(), testRules(), start, ptr.Ptr(int64(1)), nil, 15)
	require.NoError(t, err)

	assert.Equal(t, 60, times.ServiceDurationMinutes)
	assert.Equal(t, 15, times.ExtensionMinutes)
	assert.Equal(t, 20, times.BufferMinutes)
	assert.Equal(t, start.Add(75*time.Minute), times.ServiceEndAt)
	assert.Equal(t, start.Add(95*time.Minute), times.OccupiedEndAt)
	assert.Equal(t, domain.NewTimeInterval(start, start.Add(95*time.Minute)), times.OccupiedInterval())
}

func TestComputeBookingTimes_CourseOverridesBaseDuration(t *testing.T) {
	times, err := ComputeBookingTimes(testMenu(), testRules(), at(5, 10, 0), ptr.Ptr(int64(2)), ptr.Ptr(45), 0)
	require.NoError(t, err)

	assert.Equal(t, 90, times.ServiceDurationMinutes)
}

func TestComputeBookingTimes_BaseDurationWithoutCourse(t *testing.T) {
	start := at(5, 10, 0)

	times, err := ComputeBookingTimes(testMenu(), testRules(), start, nil, ptr.Ptr(45), 0)
	require.NoError(t, err)

	assert.Equal(t, 45, times.ServiceDurationMinutes)
	assert.Equal(t, start.Add(45*time.Minute), times.ServiceEndAt)
	assert.Equal(t, start.Add(65*time.Minute), times.OccupiedEndAt)
}

func TestComputeBookingTimes_InvalidExtension(t *testing.T) {
	tests := []struct {
		name      string
		extension int
	}{
		{"not a step multiple", 20},
		{"exceeds cap", 75},
		{"negative", -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, err := ComputeBookingTimes(testMenu(), testRules(), at(5, 10, 0), ptr.Ptr(int64(1)), nil, tt.extension)
			assert.ErrorIs(t, err, ErrInvalidExtension)
			assert.Nil(t, times)
		})
	}
}

func TestComputeBookingTimes_UnknownCourse(t *testing.T) {
	times, err := ComputeBookingTimes(testMenu(), testRules(), at(5, 10, 0), ptr.Ptr(int64(999)), nil, 0)

	assert.ErrorIs(t, err, ErrUnknownCourse)
	assert.Nil(t, times)
}

func TestComputeBookingTimes_MissingDuration(t *testing.T) {
	times, err := ComputeBookingTimes(testMenu(), testRules(), at(5, 10, 0), nil, nil, 0)
	assert.ErrorIs(t, err, ErrMissingDuration)
	assert.Nil(t, times)

	times, err = ComputeBookingTimes(testMenu(), testRules(), at(5, 10, 0), nil, ptr.Ptr(0), 0)
	assert.ErrorIs(t, err, ErrMissingDuration)
	assert.Nil(t, times)
}

func TestComputeBookingTimes_ZeroExtensionAlwaysAllowed(t *testing.T) {
	rules := testRules()
	rules.MaxExtensionMinutes = 0

	times, err := ComputeBookingTimes(testMenu(), rules, at(5, 10, 0), ptr.Ptr(int64(1)), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, times.ExtensionMinutes)
}
