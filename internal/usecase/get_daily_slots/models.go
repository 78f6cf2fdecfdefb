package get_daily_slots

import "time"

// Request модель запроса на получение дневного таймлайна слотов
type Request struct {
	ShopID             int64     // ID салона
	TherapistID        *int64    // Конкретный мастер (nil = все мастера салона)
	Date               time.Time // Рабочая дата
	GranularityMinutes *int      // Шаг сетки слотов (nil = дефолт салона)
	AdminView          bool      // Админский вид: различать tentative и blocked
	AdminUserID        int64     // Пользователь, запросивший админский вид
}

// Response модель ответа с таймлайнами мастеров
type Response struct {
	ShopID    int64               // ID салона
	Date      time.Time           // Рабочая дата
	Timelines []TherapistTimeline // Таймлайны по мастерам
}

// TherapistTimeline таймлайн одного мастера на рабочую дату
// Слоты ночных сегментов выходят за полночь и остаются в таймлайне
// дня начала сегмента
type TherapistTimeline struct {
	TherapistID  int64  // ID мастера
	Slots        []Slot // Упорядоченная сетка слотов
	NextOpenSlot *Slot  // Ближайший будущий открытый слот (если есть)
}

// Slot один слот таймлайна
type Slot struct {
	StartAt time.Time // Начало слота
	EndAt   time.Time // Конец слота
	Status  string    // open / blocked (в админском виде ещё tentative)
}
