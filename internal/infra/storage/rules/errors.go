package rules

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rules.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rules.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rules.repository: failed to scan row")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("rules.repository: transaction error")
)
