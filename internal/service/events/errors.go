package events

import "errors"

var (
	// ErrRefreshFailed возвращается, когда refresh не смог получить данные
	// Предыдущий снапшот при этом остается опубликованным
	ErrRefreshFailed = errors.New("events: refresh failed")

	// ErrPartialDelete возвращается, когда удалилась только часть окон доступности
	ErrPartialDelete = errors.New("events: some availability windows were not deleted")

	// ErrInternal возвращается при внутренних ошибках store
	ErrInternal = errors.New("events: internal error")
)
