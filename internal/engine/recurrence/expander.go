package recurrence

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Expand разворачивает диапазон [start, end] в упорядоченную
// последовательность уникальных дат, проходящих паттерн.
//
// Итератор ленивый: даты вычисляются по одной при каждом вызове Next, большие
// диапазоны не материализуются целиком. Итератор конечный и перезапускаемый
// (Reset). Прерывание обхода — это просто прекращение вызовов Next, никаких
// побочных эффектов у него нет.
//
// Выход отсортирован по возрастанию календарной даты; дубликаты между
// источниками паттерна невозможны, так как каждая дата диапазона проверяется
// ровно один раз.
func Expand(start, end time.Time, pattern Pattern) *Iterator {
	it := &Iterator{
		start:   dateOnly(start),
		end:     dateOnly(end),
		pattern: pattern,
	}

	// Явные даты проверяются через множество, чтобы обход оставался
	// последовательным по календарю
	if len(pattern.Dates) > 0 {
		it.explicit = make(map[string]bool, len(pattern.Dates))
		for _, d := range pattern.Dates {
			it.explicit[dateOnly(d).Format(domain.DateFormat)] = true
		}
	}

	it.Reset()
	return it
}

// Iterator последовательный обход дат развернутого диапазона
type Iterator struct {
	start    time.Time
	end      time.Time
	pattern  Pattern
	explicit map[string]bool

	cur time.Time
}

// Next возвращает следующую дату последовательности.
// Второе значение false означает конец последовательности.
func (it *Iterator) Next() (time.Time, bool) {
	for !it.cur.After(it.end) {
		date := it.cur
		it.cur = it.cur.AddDate(0, 0, 1)
		if it.pattern.matches(date, it.explicit) {
			return date, true
		}
	}
	return time.Time{}, false
}

// Reset перезапускает обход с начала диапазона
func (it *Iterator) Reset() {
	it.cur = it.start
}

// Collect материализует оставшуюся часть последовательности.
// Удобно в тестах и для небольших диапазонов.
func (it *Iterator) Collect() []time.Time {
	dates := make([]time.Time, 0)
	for {
		d, ok := it.Next()
		if !ok {
			return dates
		}
		dates = append(dates, d)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
