package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	rulesRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/shoprules"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

var jst = time.FixedZone("JST", 9*60*60)

// tAt returns a time on the given March 2026 day in shop-local time
func tAt(day, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, jst)
}

// --- fakes ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	byKey        map[string]*domain.Reservation

	createErr    error
	raceExisting *domain.Reservation

	created      *domain.Reservation
	createCalled bool
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.createCalled = true
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *res
	out.ID = 501
	out.CreatedAt = tAt(4, 9, 0)
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeReservationRepo) FindByIdempotencyKey(_ context.Context, _ int64, key string) (*domain.Reservation, error) {
	if f.raceExisting != nil && f.createCalled {
		return f.raceExisting, nil
	}
	if res, ok := f.byKey[key]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) GetForTherapistInRange(_ context.Context, therapistID int64, from, to time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.TherapistID != therapistID {
			continue
		}
		if res.StartAt.Before(to) && res.OccupiedEndAt.After(from) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeShiftRepo struct {
	shifts []*domain.Shift
}

func (f *fakeShiftRepo) GetForTherapistOnDate(_ context.Context, therapistID int64, date time.Time) ([]*domain.Shift, error) {
	var out []*domain.Shift
	for _, s := range f.shifts {
		if s.TherapistID == therapistID && s.Date.Format(domain.DateFormat) == date.Format(domain.DateFormat) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRulesRepo struct {
	rules *domain.BookingRules
}

func (f *fakeRulesRepo) GetByShopID(_ context.Context, _ int64) (*domain.BookingRules, error) {
	if f.rules == nil {
		return nil, rulesRepo.ErrRulesNotFound
	}
	return f.rules, nil
}

type fakeShopClient struct {
	shop *shopservice.Shop
	err  error
}

func (f *fakeShopClient) GetShop(_ context.Context, _ int64) (*shopservice.Shop, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shop, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

func testShop() *shopservice.Shop {
	weekly := make(map[string][]shopservice.OpenSegment)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		weekly[day] = []shopservice.OpenSegment{{Open: "10:00", Close: "22:00"}}
	}
	return &shopservice.Shop{
		ID:          10,
		Name:        "Aroma Shinjuku",
		Timezone:    "Asia/Tokyo",
		ManagerIDs:  []int64{900},
		WeeklyHours: weekly,
		Courses: []shopservice.Course{
			{ID: 1, Name: "Aroma 60", Price: 9000, DurationMinutes: 60},
			{ID: 2, Name: "Aroma 90", Price: 13000, DurationMinutes: 90},
		},
		TherapistIDs: []int64{101, 102},
	}
}

// workingShift therapist works March 4th (Wednesday), 10:00-20:00 JST
func workingShift(id, therapistID int64, breaks ...domain.TimeInterval) *domain.Shift {
	return &domain.Shift{
		ID:          id,
		TherapistID: therapistID,
		ShopID:      10,
		Date:        tAt(4, 0, 0),
		StartAt:     tAt(4, 10, 0),
		EndAt:       tAt(4, 20, 0),
		BreakSlots:  breaks,
		Status:      domain.ShiftStatusWorking,
	}
}

func confirmedReservation(therapistID int64, start, end time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:            400,
		GuestID:       77,
		ShopID:        10,
		TherapistID:   therapistID,
		StartAt:       start,
		ServiceEndAt:  end,
		OccupiedEndAt: end,
		Status:        domain.StatusConfirmed,
	}
}

type testEnv struct {
	uc      *UseCase
	resRepo *fakeReservationRepo
	shifts  *fakeShiftRepo
	rules   *fakeRulesRepo
	shopSvc *fakeShopClient
}

func newTestEnv() *testEnv {
	env := &testEnv{
		resRepo: &fakeReservationRepo{byKey: map[string]*domain.Reservation{}},
		shifts:  &fakeShiftRepo{},
		rules:   &fakeRulesRepo{},
		shopSvc: &fakeShopClient{shop: testShop()},
	}
	env.uc = NewUseCase(env.resRepo, env.shifts, env.rules, env.shopSvc, &fakeTxManager{}, 15*time.Minute, nopLogger{})
	env.uc.timeProvider = &fixedClock{now: tAt(4, 9, 0)}
	return env
}

func validRequest() *Request {
	return &Request{
		GuestID:     42,
		ShopID:      10,
		TherapistID: ptr.Ptr(int64(101)),
		CourseID:    ptr.Ptr(int64(1)),
		StartAt:     tAt(4, 12, 0),
	}
}

// --- tests ---

func TestExecute_CreatesHoldWithCourse(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(501), resp.ID)
	assert.Equal(t, int64(101), resp.TherapistID)
	assert.Equal(t, tAt(4, 12, 0), resp.StartAt)
	assert.Equal(t, tAt(4, 13, 0), resp.ServiceEndAt)
	// default rules: 10 minute buffer after the service
	assert.Equal(t, tAt(4, 13, 10), resp.OccupiedEndAt)
	assert.Equal(t, 60, resp.ServiceDurationMinutes)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.Equal(t, string(domain.StatusHold), resp.Status)
	require.NotNil(t, resp.ReservedUntil)
	assert.Equal(t, tAt(4, 9, 15), *resp.ReservedUntil)
	assert.Equal(t, "Aroma 60", resp.CourseName)
	assert.Equal(t, 9000.0, resp.CoursePrice)
}

func TestExecute_ExplicitDurationWithExtension(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}
	env.rules.rules = &domain.BookingRules{
		ShopID:               10,
		BaseBufferMinutes:    20,
		MaxExtensionMinutes:  60,
		ExtensionStepMinutes: 30,
	}

	req := validRequest()
	req.CourseID = nil
	req.DurationMinutes = ptr.Ptr(45)
	req.ExtensionMinutes = 30

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	// 45 min service + 30 min extension, then the 20 min buffer
	assert.Equal(t, tAt(4, 13, 15), resp.ServiceEndAt)
	assert.Equal(t, tAt(4, 13, 35), resp.OccupiedEndAt)
	assert.Equal(t, 30, resp.ExtensionMinutes)
	assert.Empty(t, resp.CourseName)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero guest", func(req *Request) { req.GuestID = 0 }},
		{"zero shop", func(req *Request) { req.ShopID = 0 }},
		{"negative extension", func(req *Request) { req.ExtensionMinutes = -15 }},
		{"zero start time", func(req *Request) { req.StartAt = time.Time{} }},
		{"empty idempotency key", func(req *Request) { req.IdempotencyKey = ptr.Ptr("") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ShopNotFound(t *testing.T) {
	env := newTestEnv()
	env.shopSvc.shop = nil
	env.shopSvc.err = shopservice.ErrShopNotFound

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestExecute_TherapistNotInShop(t *testing.T) {
	env := newTestEnv()
	req := validRequest()
	req.TherapistID = ptr.Ptr(int64(999))

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTherapistNotInShop)
}

func TestExecute_UnknownCourse(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}
	req := validRequest()
	req.CourseID = ptr.Ptr(int64(77))

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestExecute_MissingDuration(t *testing.T) {
	env := newTestEnv()
	req := validRequest()
	req.CourseID = nil
	req.DurationMinutes = nil

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingDuration)
}

func TestExecute_InvalidExtension(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}

	tests := []struct {
		name      string
		extension int
	}{
		// default rules: step 15, cap 60
		{"not a multiple of step", 20},
		{"exceeds cap", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.ExtensionMinutes = tt.extension

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidExtension)
		})
	}
}

func TestExecute_NoMatchingShift(t *testing.T) {
	env := newTestEnv()
	// смен на эту дату нет

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoMatchingShift)
}

func TestExecute_BreakConflict(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{
		workingShift(1, 101, domain.TimeInterval{Start: tAt(4, 12, 30), End: tAt(4, 13, 30)}),
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBreakConflict)
}

func TestExecute_SlotOccupied(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}
	env.resRepo.reservations = []*domain.Reservation{
		confirmedReservation(101, tAt(4, 12, 30), tAt(4, 14, 0)),
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestExecute_ActiveHoldBlocksSlot(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}

	hold := confirmedReservation(101, tAt(4, 12, 0), tAt(4, 13, 0))
	hold.Status = domain.StatusHold
	hold.ReservedUntil = ptr.Ptr(tAt(4, 9, 30)) // ещё не истёк: now = 09:00
	env.resRepo.reservations = []*domain.Reservation{hold}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestExecute_ExpiredHoldFreesSlot(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}

	hold := confirmedReservation(101, tAt(4, 12, 0), tAt(4, 13, 0))
	hold.Status = domain.StatusHold
	hold.ReservedUntil = ptr.Ptr(tAt(4, 8, 45)) // истёк до now = 09:00
	env.resRepo.reservations = []*domain.Reservation{hold}

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusHold), resp.Status)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	env := newTestEnv()
	// смена шире часов работы - отфильтровать должны именно часы салона
	shift := workingShift(1, 101)
	shift.StartAt = tAt(4, 8, 0)
	env.shifts.shifts = []*domain.Shift{shift}

	req := validRequest()
	req.StartAt = tAt(4, 8, 30)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_FreeAssignmentPrefersRequestedStaff(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{
		workingShift(1, 101),
		workingShift(2, 102),
	}

	req := validRequest()
	req.TherapistID = nil
	req.PreferredStaffID = ptr.Ptr(int64(102))

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(102), resp.TherapistID)
}

func TestExecute_FreeAssignmentFallsBackWhenPreferredBusy(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{
		workingShift(1, 101),
		workingShift(2, 102),
	}
	env.resRepo.reservations = []*domain.Reservation{
		confirmedReservation(102, tAt(4, 11, 30), tAt(4, 13, 30)),
	}

	req := validRequest()
	req.TherapistID = nil
	req.PreferredStaffID = ptr.Ptr(int64(102))

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.TherapistID)
}

func TestExecute_NoAvailableTherapist(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}
	env.resRepo.reservations = []*domain.Reservation{
		confirmedReservation(101, tAt(4, 11, 30), tAt(4, 13, 30)),
	}

	req := validRequest()
	req.TherapistID = nil

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoAvailableTherapist)
}

func TestExecute_IdempotentReplayReturnsExisting(t *testing.T) {
	env := newTestEnv()
	existing := confirmedReservation(101, tAt(4, 12, 0), tAt(4, 13, 10))
	existing.ID = 600
	env.resRepo.byKey["req-abc"] = existing

	req := validRequest()
	req.IdempotencyKey = ptr.Ptr("req-abc")

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(600), resp.ID)
	assert.False(t, env.resRepo.createCalled, "повтор не должен создавать новую бронь")
}

func TestExecute_DuplicateKeyRaceReturnsWinner(t *testing.T) {
	env := newTestEnv()
	env.shifts.shifts = []*domain.Shift{workingShift(1, 101)}

	winner := confirmedReservation(101, tAt(4, 12, 0), tAt(4, 13, 10))
	winner.ID = 700
	env.resRepo.createErr = reservationRepo.ErrDuplicateIdempotencyKey
	env.resRepo.raceExisting = winner

	req := validRequest()
	req.IdempotencyKey = ptr.Ptr("req-race")

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(700), resp.ID)
}

func TestExecute_OvernightShiftFromPreviousDate(t *testing.T) {
	env := newTestEnv()
	// салон работает круглосуточно по override, смена мастера
	// начата 3-го и уходит за полночь на 4-е
	env.shopSvc.shop.DateOverrides = map[string][]shopservice.OpenSegment{
		"2026-03-03": {{Open: "00:00", Close: "00:00"}},
		"2026-03-04": {{Open: "00:00", Close: "00:00"}},
	}
	env.shifts.shifts = []*domain.Shift{
		{
			ID:          5,
			TherapistID: 101,
			ShopID:      10,
			Date:        tAt(3, 0, 0),
			StartAt:     tAt(3, 18, 0),
			EndAt:       tAt(4, 2, 0),
			Status:      domain.ShiftStatusWorking,
		},
	}
	env.uc.timeProvider = &fixedClock{now: tAt(3, 20, 0)}

	req := validRequest()
	req.StartAt = tAt(4, 0, 30)

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.TherapistID)
}
