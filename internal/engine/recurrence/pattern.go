package recurrence

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Pattern описывает фильтр повторяемости для развертывания диапазона дат.
// Источники объединяются по ИЛИ: дата попадает в выборку, если она проходит
// маску дней недели, указана явно или лежит в диапазоне месяцев.
// Пустой паттерн не выбирает ни одной даты.
type Pattern struct {
	// Weekdays маска дней недели (индекс — time.Weekday)
	Weekdays [7]bool

	// Dates явный список дат; даты вне запрошенного диапазона молча отбрасываются
	Dates []time.Time

	// Months диапазон месяцев, допускается переход через границу года (Nov..Feb)
	Months *MonthSpan
}

// MonthSpan диапазон месяцев включительно
type MonthSpan struct {
	From time.Month
	To   time.Month
}

// EveryDay возвращает паттерн, пропускающий каждую дату диапазона
func EveryDay() Pattern {
	var p Pattern
	for i := range p.Weekdays {
		p.Weekdays[i] = true
	}
	return p
}

// Weekdays возвращает паттерн по маске дней недели
func Weekdays(days ...time.Weekday) Pattern {
	var p Pattern
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			p.Weekdays[d] = true
		}
	}
	return p
}

// ExplicitDates возвращает паттерн по явному списку дат
func ExplicitDates(dates ...time.Time) Pattern {
	return Pattern{Dates: dates}
}

// Months возвращает паттерн по диапазону месяцев
func Months(from, to time.Month) Pattern {
	return Pattern{Months: &MonthSpan{From: from, To: to}}
}

// IsEmpty возвращает true, если паттерн не содержит ни одного источника
func (p Pattern) IsEmpty() bool {
	if p.Months != nil || len(p.Dates) > 0 {
		return false
	}
	for _, on := range p.Weekdays {
		if on {
			return false
		}
	}
	return true
}

// matches проверяет дату против всех источников паттерна
func (p Pattern) matches(date time.Time, explicit map[string]bool) bool {
	if p.Weekdays[date.Weekday()] {
		return true
	}
	if explicit[date.Format(domain.DateFormat)] {
		return true
	}
	if p.Months != nil && monthInSpan(date.Month(), p.Months.From, p.Months.To) {
		return true
	}
	return false
}

func monthInSpan(m, from, to time.Month) bool {
	if from <= to {
		return m >= from && m <= to
	}
	return m >= from || m <= to
}
