package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeIN       = "IN"       // entrada desde el exterior
	MovementTypeOUT      = "OUT"      // salida hacia el exterior
	MovementTypeTRANSFER = "TRANSFER" // traslado entre ubicaciones
	MovementTypeADJUST   = "ADJUST"   // ajuste por conteo físico
)

// Movement cabecera de una transacción del kardex. Inmutable una vez creada;
// en este motor siempre nace posteada (no existen movimientos borrador).
type Movement struct {
	ID        string
	Type      string // IN, OUT, TRANSFER, ADJUST
	Reference string // código único global
	Note      string
	Posted    bool
	Lines     []MovementLine
	CreatedAt time.Time
	CreatedBy string // UserID
}

// MovementLine un cambio de cantidad con signo dentro de un Movement.
// La dirección se codifica con from/to: ambos = traslado, solo To = entrada,
// solo From = salida. Quantity es siempre magnitud positiva.
type MovementLine struct {
	ID             string
	MovementID     string
	ItemID         string
	FromLocationID *string
	ToLocationID   *string
	Quantity       decimal.Decimal
}

// IsTransfer indica si la línea mueve entre dos ubicaciones internas.
func (l MovementLine) IsTransfer() bool {
	return l.FromLocationID != nil && l.ToLocationID != nil
}
