package timezone

import "time"

// Конвертация между хранимым временем (UTC) и локальным временем клиента.
//
// Смещение в минутах фиксируется один раз в момент бронирования из окружения
// клиента и хранится рядом с бронью. Оно никогда не пересчитывается по живой
// базе часовых поясов: если правила перехода на летнее время изменятся после
// покупки, отображаемое время брони останется прежним. Это осознанный размен
// «географически всегда верно» на «исторически воспроизводимо».

// ToCustomerLocal переводит хранимый момент в локальное время клиента
// по зафиксированному смещению
func ToCustomerLocal(stored time.Time, offsetMinutes int) time.Time {
	loc := time.FixedZone(zoneName(offsetMinutes), offsetMinutes*60)
	return stored.In(loc)
}

// ToStorage переводит локальное время клиента обратно в хранимую форму (UTC)
func ToStorage(display time.Time, offsetMinutes int) time.Time {
	// Смещение уже заложено в зону отображаемого момента; приведение к UTC
	// дает тот же абсолютный момент
	_ = offsetMinutes
	return display.UTC()
}

// FromWallClock интерпретирует «настенные» дату и время клиента как момент
// в его зафиксированном смещении. Используется на входной границе, когда
// клиент присылает локальные дату и время плюс смещение окружения.
func FromWallClock(year int, month time.Month, day, hour, minute, offsetMinutes int) time.Time {
	loc := time.FixedZone(zoneName(offsetMinutes), offsetMinutes*60)
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func zoneName(offsetMinutes int) string {
	if offsetMinutes == 0 {
		return "UTC"
	}
	sign := "+"
	m := offsetMinutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	return "UTC" + sign + formatHHMM(m)
}

func formatHHMM(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return twoDigits(h) + ":" + twoDigits(m)
}

func twoDigits(v int) string {
	return string([]byte{byte('0' + v/10%10), byte('0' + v%10)})
}
