package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	GuestID          int64      // ID гостя
	ShopID           int64      // ID салона
	TherapistID      *int64     // Явно выбранный мастер (nil = свободное назначение)
	PreferredStaffID *int64     // Предпочтительный мастер при свободном назначении
	CourseID         *int64     // Курс из меню салона (опционально)
	DurationMinutes  *int       // Длительность услуги, если курс не указан
	ExtensionMinutes int        // Запрошенное продление
	StartAt          time.Time  // Время начала услуги
	IdempotencyKey   *string    // Ключ идемпотентности (опционально)
	Notes            *string    // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64  // ID созданного бронирования
	GuestID     int64  // ID гостя
	ShopID      int64  // ID салона
	TherapistID int64  // Назначенный мастер (выбранный или подобранный)
	CourseID    *int64 // ID курса

	StartAt       time.Time // Начало услуги
	ServiceEndAt  time.Time // Конец услуги (показывается гостю)
	OccupiedEndAt time.Time // Конец занятого интервала (услуга + буфер)

	ServiceDurationMinutes int // Длительность услуги
	ExtensionMinutes       int // Продление
	BufferMinutes          int // Буфер после услуги

	Status        string     // Статус бронирования
	ReservedUntil *time.Time // Срок действия hold

	// Денормализованные данные
	CourseName  string  // Название курса
	CoursePrice float64 // Цена курса
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
