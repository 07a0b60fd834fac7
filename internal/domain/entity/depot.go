package entity

import "time"

// Tipos de depósito.
const (
	DepotTypePrimary   = "primario"   // planta de producción
	DepotTypeSecondary = "secundario" // punto de distribución
)

// Depot representa un depósito físico donde se almacena producto terminado.
// El primario recibe producción; los secundarios reciben traslados.
type Depot struct {
	ID        string
	Name      string
	Type      string // primario | secundario
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPrimary indica si el depósito es la planta de producción.
func (d *Depot) IsPrimary() bool {
	return d.Type == DepotTypePrimary
}
