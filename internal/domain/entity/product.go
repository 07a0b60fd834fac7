package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado (dato de referencia).
type Product struct {
	ID              string
	Name            string
	UnitWeightGrams decimal.Decimal // peso por unidad, en gramos
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
