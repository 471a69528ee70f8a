package entity

import "time"

// TransactionType tipo de transacción sobre activos (enum cerrado).
type TransactionType string

const (
	TransactionCheckOut TransactionType = "check_out"
	TransactionCheckIn  TransactionType = "check_in"
	TransactionRepair   TransactionType = "repair"
	TransactionLost     TransactionType = "lost"
	TransactionTransfer TransactionType = "transfer"
)

// Valid indica si el tipo de transacción es uno de los permitidos.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionCheckOut, TransactionCheckIn, TransactionRepair,
		TransactionLost, TransactionTransfer:
		return true
	}
	return false
}

// Estados de una transacción.
const (
	TransactionStatusOpen   = "open"
	TransactionStatusClosed = "closed"
)

// Transaction agrupa movimientos de activos bajo un número de referencia.
// Máquina de estados: open -> closed; cerrada solo admite reapertura explícita.
// Las transacciones nunca tocan el stock agregado de categorías: los activos
// son serializados y se siguen por estado, no por cantidad.
type Transaction struct {
	ID              int64
	TransactionType TransactionType
	ReferenceNo     string // <PREFIX>-YYYYMMDD-NNN
	FirstPerson     string
	SecondPerson    string
	Location        string
	TransactionDate time.Time
	Status          string
	CreatedBy       string
	Notes           string
	CreatedAt       time.Time
}

// Closed indica si la transacción ya no admite cambios.
func (t *Transaction) Closed() bool {
	return t.Status == TransactionStatusClosed
}
