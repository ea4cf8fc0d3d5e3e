package rules

// RuleRow сырая строка правила доступности, как она хранится в БД.
// from_value/to_value — сериализованные границы, их смысл зависит от kind
// (дата YYYY-MM-DD, индекс дня недели, индекс месяца или время HH:MM).
// Типизацией и проверкой занимается сервисный слой при сборке снапшота
type RuleRow struct {
	ID             int64
	OwnerKind      string
	OwnerID        int64
	Kind           string
	FromValue      string
	ToValue        string
	Bookable       bool
	Lockout        int
	Priority       int
	PriceDelta     *float64
	PriceExclusive bool
	Position       int
}
