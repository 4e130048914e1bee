package manage_availability

import "errors"

var (
	// ErrForbidden возвращается, когда окнами доступности управляет не администратор
	ErrForbidden = errors.New("manage_availability: admin role required")

	// ErrInvalidRange возвращается для пустого, перевернутого или пересекающего полночь диапазона
	ErrInvalidRange = errors.New("manage_availability: invalid time range")

	// ErrRangeInPast возвращается при попытке создать окно в прошлом
	ErrRangeInPast = errors.New("manage_availability: range is in the past")

	// ErrNoWindowsInRange возвращается, когда диапазон не задевает ни одного окна
	ErrNoWindowsInRange = errors.New("manage_availability: no availability windows in range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_availability: invalid input data")
)
