package get_calendar

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не настроен для бронирования
	ErrItemNotFound = errors.New("get_calendar: item not found")

	// ErrResourceNotFound возвращается, когда ресурс не настроен
	ErrResourceNotFound = errors.New("get_calendar: resource not found")

	// ErrRangeTooWide возвращается, когда запрошенное окно календаря шире лимита
	ErrRangeTooWide = errors.New("get_calendar: calendar range is too wide")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
