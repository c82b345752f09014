package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest una línea de un movimiento a registrar.
// Dirección por from/to: ambos = traslado, solo to = entrada, solo from = salida.
type MovementLineRequest struct {
	ItemID         string          `json:"item_id" validate:"required"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// AppendMovementRequest body para POST /api/movements.
type AppendMovementRequest struct {
	Type      string                `json:"type"` // IN, OUT, TRANSFER
	Reference string                `json:"reference" validate:"required"`
	Note      string                `json:"note"`
	Lines     []MovementLineRequest `json:"lines" validate:"required,min=1"`
}

// MovementLineResponse una línea del kardex.
type MovementLineResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	FromLocationID *string         `json:"from_location_id,omitempty"`
	ToLocationID   *string         `json:"to_location_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// MovementResponse cabecera + líneas de un movimiento.
type MovementResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Reference string                 `json:"reference"`
	Note      string                 `json:"note,omitempty"`
	Posted    bool                   `json:"posted"`
	Lines     []MovementLineResponse `json:"lines"`
	CreatedAt time.Time              `json:"created_at"`
	CreatedBy string                 `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockBalanceResponse saldo actual de un item en una ubicación.
type StockBalanceResponse struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StockAuditMismatch discrepancia entre el saldo materializado y el derivado del kardex.
type StockAuditMismatch struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	BookQty    decimal.Decimal `json:"book_qty"`    // tabla stock
	DerivedQty decimal.Decimal `json:"derived_qty"` // suma de líneas del kardex
}

// StockAuditResponse resultado de la auditoría de integridad del kardex.
type StockAuditResponse struct {
	Consistent bool                 `json:"consistent"`
	Mismatches []StockAuditMismatch `json:"mismatches"`
}
