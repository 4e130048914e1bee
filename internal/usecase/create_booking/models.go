package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ServiceIDs []int64   // ID выбранных услуг (минимум одна)
	StartAt    time.Time // Начало выбранного слота
	Notes      *string   // Дополнительные заметки (опционально)
	ForUser    *int64    // ID пользователя, для которого бронирует администратор (опционально)
}

// Response модель ответа с параметрами созданного бронирования
type Response struct {
	StartAt       time.Time // Начало слота
	EndAt         time.Time // Конец слота
	ServiceIDs    []int64   // ID забронированных услуг
	TotalPrice    float64   // Суммарная цена выбранных услуг
	TotalDuration string    // Суммарная длительность, например "1h 30min"
}
