package validate_booking

import "errors"

// Недоступность дат не является ошибкой: она возвращается как типизированный
// результат BookingFeasibility. Ошибки ниже — только для структурно
// некорректных входов и отказов инфраструктуры.
var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_booking: internal error")
)
