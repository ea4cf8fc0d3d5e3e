package ruleset

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не настроен для бронирования
	// (нет ни правил, ни настроек)
	ErrItemNotFound = errors.New("ruleset: item is not configured for booking")

	// ErrResourceNotFound возвращается, когда для ресурса нет набора правил
	ErrResourceNotFound = errors.New("ruleset: resource is not configured")

	// ErrInvalidConfiguration возвращается, когда присланная конфигурация
	// правил структурно некорректна; отклоняется целиком, до какой-либо записи
	ErrInvalidConfiguration = errors.New("ruleset: invalid rule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("ruleset: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ruleset: internal error")
)
