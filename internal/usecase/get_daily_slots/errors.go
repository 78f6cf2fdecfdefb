package get_daily_slots

import "errors"

var (
	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = errors.New("get_daily_slots: shop not found")

	// ErrTherapistNotInShop возвращается, когда мастер не числится в салоне
	ErrTherapistNotInShop = errors.New("get_daily_slots: therapist does not belong to this shop")

	// ErrAccessDenied возвращается, когда админский вид запросил не менеджер салона
	ErrAccessDenied = errors.New("get_daily_slots: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_daily_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_daily_slots: internal error")
)
