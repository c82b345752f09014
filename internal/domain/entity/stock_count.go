package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un conteo físico.
const (
	StockCountStatusDraft  = "draft"
	StockCountStatusPosted = "posted"
)

// StockCount representa una sesión de conteo físico sobre una ubicación.
// Transiciona draft -> posted exactamente una vez; inmutable después de posted.
type StockCount struct {
	ID         string
	Reference  string // código único global (ej. CNT-20250115-093000)
	Status     string // draft | posted
	LocationID string
	Note       string
	Lines      []StockCountLine
	CreatedAt  time.Time
	CreatedBy  string // UserID
	PostedAt   *time.Time
	PostedBy   string
}

// StockCountLine cantidad contada de un item dentro de un conteo (una línea por item).
// La cantidad en libros NO se persiste aquí: se relee del stock vivo al consultar o postear.
type StockCountLine struct {
	ID           string
	StockCountID string
	ItemID       string
	CountedQty   decimal.Decimal
}

// IsPosted indica si el conteo ya fue sellado.
func (sc *StockCount) IsPosted() bool {
	return sc.Status == StockCountStatusPosted
}
