package entity

import "time"

// Tipos de ubicación física.
const (
	LocationKindWarehouse = "warehouse" // bodega
	LocationKindStore     = "store"     // punto de venta
	LocationKindTransit   = "transit"   // en tránsito
)

// Location representa una ubicación física de almacenamiento (bodega, tienda, tránsito).
// Referenciada por Stock y por las líneas de Movement.
type Location struct {
	ID        string
	Code      string // código único (ej. KHO-01)
	Name      string
	Kind      string // warehouse, store, transit
	CreatedAt time.Time
	UpdatedAt time.Time
}
