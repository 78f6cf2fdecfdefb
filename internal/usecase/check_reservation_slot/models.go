package check_reservation_slot

import "time"

// Request модель запроса на проверку доступности слота
type Request struct {
	ShopID           int64     // ID салона
	TherapistID      int64     // ID мастера
	CourseID         *int64    // Курс из меню салона (опционально)
	DurationMinutes  *int      // Длительность услуги, если курс не указан
	ExtensionMinutes int       // Запрошенное продление
	StartAt          time.Time // Время начала услуги
}

// Response модель ответа проверки доступности
// Причины отказа возвращаются данными, а не ошибками: клиент
// показывает гостю наиболее специфичную применимую причину
type Response struct {
	Available       bool     // Доступен ли слот
	RejectedReasons []string // Причины отказа (пусто, если доступен)
	MatchedShiftID  *int64   // Смена, вместившая интервал (если найдена)

	StartAt       time.Time // Начало услуги
	ServiceEndAt  time.Time // Конец услуги
	OccupiedEndAt time.Time // Конец занятого интервала (услуга + буфер)

	ServiceDurationMinutes int // Длительность услуги
	ExtensionMinutes       int // Продление
	BufferMinutes          int // Буфер после услуги
}
