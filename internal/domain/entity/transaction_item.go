package entity

// TransactionItem línea de una transacción: un activo afectado.
type TransactionItem struct {
	ID              int64
	TransactionID   int64
	ProductID       string
	ConditionBefore string
	ConditionAfter  string
	Quantity        int
	Notes           string
	Status          string
}
