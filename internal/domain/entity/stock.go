package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo actual de un item en una ubicación (vista materializada del kardex).
// Única por (item, ubicación); fila ausente equivale a cantidad cero. Puede ser negativa:
// refleja merma real antes de reconciliar, la no-negatividad es responsabilidad del caller.
type Stock struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
