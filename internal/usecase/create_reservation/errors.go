package create_reservation

import "errors"

var (
	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = errors.New("create_reservation: shop not found")

	// ErrTherapistNotInShop возвращается, когда мастер не числится в салоне
	ErrTherapistNotInShop = errors.New("create_reservation: therapist does not belong to this shop")

	// ErrUnknownCourse возвращается, когда курс не найден в меню салона
	ErrUnknownCourse = errors.New("create_reservation: unknown course")

	// ErrMissingDuration возвращается, когда не указан ни курс, ни длительность
	ErrMissingDuration = errors.New("create_reservation: duration is required when no course is given")

	// ErrInvalidExtension возвращается, когда продление не кратно шагу или превышает лимит
	ErrInvalidExtension = errors.New("create_reservation: invalid extension")

	// ErrOutsideBusinessHours возвращается, когда интервал не помещается в часы работы салона
	ErrOutsideBusinessHours = errors.New("create_reservation: outside business hours")

	// ErrNoMatchingShift возвращается, когда ни одна рабочая смена мастера не вмещает интервал
	ErrNoMatchingShift = errors.New("create_reservation: no matching shift")

	// ErrBreakConflict возвращается, когда интервал пересекает перерыв мастера
	ErrBreakConflict = errors.New("create_reservation: conflicts with a break")

	// ErrSlotOccupied возвращается, когда интервал пересекает существующее бронирование
	ErrSlotOccupied = errors.New("create_reservation: overlaps an existing reservation")

	// ErrNoAvailableTherapist возвращается, когда при свободном назначении никто не доступен
	ErrNoAvailableTherapist = errors.New("create_reservation: no available therapist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
