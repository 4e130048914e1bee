package manage_availability

import "time"

// CreateRequest модель запроса на создание окна доступности
type CreateRequest struct {
	StartAt time.Time // Начало окна
	EndAt   time.Time // Конец окна; должен быть в тот же календарный день бизнес-таймзоны
}

// DeleteRequest модель запроса на удаление окон доступности в диапазоне
type DeleteRequest struct {
	StartAt time.Time // Начало выделенного диапазона
	EndAt   time.Time // Конец выделенного диапазона
}

// DeleteResponse модель ответа с удаленными окнами
type DeleteResponse struct {
	WindowIDs []int64 // ID окон, задетых диапазоном
}
