package entity

import "time"

// Lot representa un lote fechado: la cantidad de un producto que comparte una
// misma fecha de vencimiento dentro de un depósito. La clave natural es
// (DepotID, ProductID, Lote), donde Lote es la fecha de vencimiento "YYYY-MM-DD"
// o una clave sintética "AJUSTE-xxxxxxxx" para stock proveniente de ajustes.
// Un lote con cantidad 0 se considera inexistente y se elimina al escribir.
type Lot struct {
	DepotID   string
	ProductID string
	Lote      string
	Cantidad  int64
	UpdatedAt time.Time
}
