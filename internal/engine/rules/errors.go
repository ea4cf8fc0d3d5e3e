package rules

import "errors"

var (
	// ErrInvalidRule возвращается, когда правило структурно некорректно
	// (например, конец диапазона раньше начала)
	ErrInvalidRule = errors.New("rules: invalid availability rule")

	// ErrTooManyRules возвращается при превышении лимита правил на владельца
	ErrTooManyRules = errors.New("rules: too many rules for owner")

	// ErrUnknownKind возвращается для неизвестного типа правила
	ErrUnknownKind = errors.New("rules: unknown rule kind")
)
