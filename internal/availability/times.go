package availability

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidExtension requested extension is not a valid step multiple or exceeds the cap
	ErrInvalidExtension = errors.New("availability: invalid extension")

	// ErrUnknownCourse course id is not present in the shop menu
	ErrUnknownCourse = errors.New("availability: unknown course")

	// ErrMissingDuration neither a course nor an explicit base duration was supplied
	ErrMissingDuration = errors.New("availability: missing duration")
)

// BookingTimes derived booking timestamps for one request.
// The occupied interval [StartAt, OccupiedEndAt) is what availability
// checks use; the service interval [StartAt, ServiceEndAt) is what is
// shown to the guest.
type BookingTimes struct {
	StartAt                time.Time
	ServiceDurationMinutes int
	ExtensionMinutes       int
	BufferMinutes          int
	ServiceEndAt           time.Time
	OccupiedEndAt          time.Time
}

// OccupiedInterval returns the interval blocking other bookings
func (t *BookingTimes) OccupiedInterval() domain.TimeInterval {
	return domain.TimeInterval{Start: t.StartAt, End: t.OccupiedEndAt}
}

// ComputeBookingTimes resolves the service duration and derives the
// service-end and occupied-end timestamps.
//
// Duration resolution: when courseID is set it is looked up in menu and
// its duration overrides baseDurationMinutes; otherwise
// baseDurationMinutes is required. The extension must be a non-negative
// exact multiple of the shop's step that does not exceed the cap. The
// buffer always comes from the shop rules and is not adjustable at
// this layer.
func ComputeBookingTimes(
	menu []domain.Course,
	rules domain.BookingRules,
	startAt time.Time,
	courseID *int64,
	baseDurationMinutes *int,
	extensionMinutes int,
) (*BookingTimes, error) {
	duration, err := resolveDuration(menu, courseID, baseDurationMinutes)
	if err != nil {
		return nil, err
	}

	if !rules.AllowsExtension(extensionMinutes) {
		return nil, ErrInvalidExtension
	}

	serviceEnd := startAt.Add(time.Duration(duration+extensionMinutes) * time.Minute)
	occupiedEnd := serviceEnd.Add(time.Duration(rules.BaseBufferMinutes) * time.Minute)

	return &BookingTimes{
		StartAt:                startAt,
		ServiceDurationMinutes: duration,
		ExtensionMinutes:       extensionMinutes,
		BufferMinutes:          rules.BaseBufferMinutes,
		ServiceEndAt:           serviceEnd,
		OccupiedEndAt:          occupiedEnd,
	}, nil
}

func resolveDuration(menu []domain.Course, courseID *int64, baseDurationMinutes *int) (int, error) {
	if courseID != nil {
		course := domain.FindCourse(menu, *courseID)
		if course == nil {
			return 0, ErrUnknownCourse
		}
		return course.DurationMinutes, nil
	}

	if baseDurationMinutes == nil || *baseDurationMinutes <= 0 {
		return 0, ErrMissingDuration
	}
	return *baseDurationMinutes, nil
}
