package edit_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование отсутствует в текущем снапшоте
	ErrBookingNotFound = errors.New("edit_booking: booking not found")

	// ErrNotOwner возвращается, когда клиент пытается изменить чужое бронирование
	ErrNotOwner = errors.New("edit_booking: booking belongs to another user")

	// ErrTooCloseToStart возвращается, когда до начала бронирования осталось меньше допустимого срока
	ErrTooCloseToStart = errors.New("edit_booking: booking starts too soon to modify")

	// ErrSlotInPast возвращается при попытке перенести бронирование в прошлое
	ErrSlotInPast = errors.New("edit_booking: new slot is in the past")

	// ErrOutsideAvailability возвращается, когда новый слот не попадает целиком в окно доступности
	ErrOutsideAvailability = errors.New("edit_booking: new slot is outside working hours")

	// ErrSlotTaken возвращается, когда новый слот пересекается с другим бронированием
	ErrSlotTaken = errors.New("edit_booking: new slot overlaps another booking")

	// ErrServiceNotFound возвращается, когда новый набор услуг ссылается на неизвестную услугу
	ErrServiceNotFound = errors.New("edit_booking: service not found in catalog")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_booking: invalid input data")
)
