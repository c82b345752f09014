package entity

import "time"

// Item representa una referencia de inventario (SKU) del catálogo.
// Inmutable en lo esencial una vez que existen movimientos que lo referencian.
type Item struct {
	ID          string
	SKU         string // código único
	Name        string // nombre único
	UnitMeasure string // unidad de medida (ej. "und", "kg")
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
