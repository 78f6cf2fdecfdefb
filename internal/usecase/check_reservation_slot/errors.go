package check_reservation_slot

import "errors"

var (
	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = errors.New("check_reservation_slot: shop not found")

	// ErrTherapistNotInShop возвращается, когда мастер не числится в салоне
	ErrTherapistNotInShop = errors.New("check_reservation_slot: therapist does not belong to this shop")

	// ErrUnknownCourse возвращается, когда курс не найден в меню салона
	ErrUnknownCourse = errors.New("check_reservation_slot: unknown course")

	// ErrMissingDuration возвращается, когда не указан ни курс, ни длительность
	ErrMissingDuration = errors.New("check_reservation_slot: duration is required when no course is given")

	// ErrInvalidExtension возвращается, когда продление не кратно шагу или превышает лимит
	ErrInvalidExtension = errors.New("check_reservation_slot: invalid extension")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_reservation_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_reservation_slot: internal error")
)
