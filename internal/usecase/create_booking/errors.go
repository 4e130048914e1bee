package create_booking

import "errors"

var (
	// ErrNoServicesSelected возвращается, когда не выбрана ни одна услуга
	ErrNoServicesSelected = errors.New("create_booking: no services selected")

	// ErrSlotNotSelected возвращается, когда не выбран временной слот
	ErrSlotNotSelected = errors.New("create_booking: no time slot selected")

	// ErrSlotInPast возвращается при попытке забронировать слот в прошлом
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrServiceNotFound возвращается, когда выбранная услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrOutsideAvailability возвращается, когда слот не попадает целиком в окно доступности
	ErrOutsideAvailability = errors.New("create_booking: slot is outside working hours")

	// ErrSlotTaken возвращается, когда слот пересекается с существующим бронированием
	ErrSlotTaken = errors.New("create_booking: slot overlaps an existing booking")

	// ErrForbidden возвращается, когда клиент пытается бронировать от имени другого пользователя
	ErrForbidden = errors.New("create_booking: booking on behalf of another user requires admin role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
