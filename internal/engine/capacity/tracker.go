package capacity

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Unlimited сентинел остатка мест для дат без ограничения lockout
const Unlimited = domain.UnlimitedSpots

// Remaining возвращает остаток мест для даты: lockout из решения минус уже
// занятые места. Результат не бывает отрицательным; для дат без ограничения
// возвращается Unlimited.
//
// Трекер сам ничего не блокирует: счетчик занятых мест принадлежит подсистеме
// заказов, и итоговая проверка перед записью брони должна выполняться
// вызывающей стороной атомарно (в одной транзакции с инкрементом счетчика).
func Remaining(decision domain.DateDecision, count int) int {
	if !decision.HasLockout() {
		return Unlimited
	}
	remaining := decision.Lockout - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Allows проверяет, помещается ли запрошенное количество мест в остаток
func Allows(remaining, requested int) bool {
	if remaining == Unlimited {
		return true
	}
	return remaining >= requested
}
