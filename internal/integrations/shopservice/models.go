package shopservice

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Shop снапшот салона из ShopService: часовой пояс, часы работы,
// меню курсов и список менеджеров
type Shop struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Timezone   string  `json:"timezone"` // IANA, например "Asia/Tokyo"
	ManagerIDs []int64 `json:"manager_ids"`

	WeeklyHours   map[string][]OpenSegment `json:"weekly_hours"`   // ключ: monday..sunday
	DateOverrides map[string][]OpenSegment `json:"date_overrides"` // ключ: YYYY-MM-DD, пустой список = закрыто

	Courses []Course `json:"courses"`

	TherapistIDs []int64 `json:"therapist_ids"`
}

// OpenSegment сегмент работы салона
// Close <= Open означает сегмент через полночь
type OpenSegment struct {
	Open  string `json:"open"`  // "18:00"
	Close string `json:"close"` // "02:00"
}

// Course курс из меню салона
type Course struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// ErrorResponse модель ошибки от ShopService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// weekdayNames соответствие ключей расписания дням недели
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// BusinessHours конвертирует снапшот в доменную конфигурацию часов работы
func (s *Shop) BusinessHours() (*domain.BusinessHoursConfig, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q: %v", ErrInvalidResponse, s.Timezone, err)
	}

	weekly := make(map[time.Weekday][]domain.OpenSegment, len(s.WeeklyHours))
	for name, segments := range s.WeeklyHours {
		weekday, ok := weekdayNames[name]
		if !ok {
			// Неизвестный ключ дня недели пропускаем, не ломая весь снапшот
			continue
		}
		weekly[weekday] = toDomainSegments(segments)
	}

	overrides := make(map[string][]domain.OpenSegment, len(s.DateOverrides))
	for date, segments := range s.DateOverrides {
		overrides[date] = toDomainSegments(segments)
	}

	return &domain.BusinessHoursConfig{
		Location:  loc,
		Weekly:    weekly,
		Overrides: overrides,
	}, nil
}

// Menu конвертирует курсы снапшота в доменное меню
func (s *Shop) Menu() []domain.Course {
	menu := make([]domain.Course, len(s.Courses))
	for i, c := range s.Courses {
		menu[i] = domain.Course{
			ID:              c.ID,
			ShopID:          s.ID,
			Name:            c.Name,
			Price:           c.Price,
			DurationMinutes: c.DurationMinutes,
		}
	}
	return menu
}

// HasManager проверяет, что пользователь является менеджером салона
func (s *Shop) HasManager(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func toDomainSegments(segments []OpenSegment) []domain.OpenSegment {
	result := make([]domain.OpenSegment, len(segments))
	for i, seg := range segments {
		result[i] = domain.OpenSegment{Open: seg.Open, Close: seg.Close}
	}
	return result
}
