package edit_booking

import "time"

// UpdateRequest модель запроса на изменение бронирования
type UpdateRequest struct {
	BookingID  int64      // ID изменяемого бронирования
	StartAt    *time.Time // Новое начало слота (опционально)
	ServiceIDs []int64    // Новый набор услуг (опционально, nil - без изменений)
	Notes      *string    // Новые заметки (опционально)
}

// DeleteRequest модель запроса на удаление бронирования
type DeleteRequest struct {
	BookingID int64 // ID удаляемого бронирования
}
