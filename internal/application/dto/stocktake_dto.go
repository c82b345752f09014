package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockCountRequest body para POST /api/stock-counts.
// Reference vacío genera uno con la fecha actual (CNT-YYYYMMDD-HHMMSS).
type CreateStockCountRequest struct {
	LocationID          string `json:"location_id" validate:"required"`
	Reference           string `json:"reference"`
	Note                string `json:"note"`
	IncludeZeroBalances bool   `json:"include_zero_balances"`
}

// UpdateCountLineRequest body para editar la cantidad contada de una línea.
// CountedQty llega como texto y se parsea a decimal exacto en la frontera
// (acepta "8.5", "8,5", "1.234,56", "1,234.56").
type UpdateCountLineRequest struct {
	CountedQty string `json:"counted_qty" validate:"required"`
}

// PostStockCountRequest body para postear (reconciliar) un conteo.
type PostStockCountRequest struct {
	MovementReference string `json:"movement_reference"` // default ADJ-<referencia del conteo>
	MovementNote      string `json:"movement_note"`
}

// StockCountLineDetail línea de conteo con cantidad en libros viva y diferencia.
type StockCountLineDetail struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	SKU        string          `json:"sku"`
	ItemName   string          `json:"item_name"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	BookQty    decimal.Decimal `json:"book_qty"` // releída del stock vivo, no snapshot
	Diff       decimal.Decimal `json:"diff"`     // counted - book; positivo = sobrante
}

// StockCountDetailResponse conteo con sus líneas detalladas.
type StockCountDetailResponse struct {
	ID         string                 `json:"id"`
	Reference  string                 `json:"reference"`
	Status     string                 `json:"status"`
	LocationID string                 `json:"location_id"`
	Note       string                 `json:"note,omitempty"`
	Lines      []StockCountLineDetail `json:"lines"`
	CreatedAt  time.Time              `json:"created_at"`
	CreatedBy  string                 `json:"created_by,omitempty"`
	PostedAt   *time.Time             `json:"posted_at,omitempty"`
	PostedBy   string                 `json:"posted_by,omitempty"`
}

// StockCountSummary cabecera de conteo para listados.
type StockCountSummary struct {
	ID         string     `json:"id"`
	Reference  string     `json:"reference"`
	Status     string     `json:"status"`
	LocationID string     `json:"location_id"`
	CreatedAt  time.Time  `json:"created_at"`
	PostedAt   *time.Time `json:"posted_at,omitempty"`
}

// StockCountListResponse lista paginada de conteos.
type StockCountListResponse struct {
	Items []StockCountSummary `json:"items"`
	Page  PageResponse        `json:"page"`
}

// PostStockCountResponse resultado del posteo: conteo sellado y el movimiento
// de ajuste generado (null si todas las diferencias fueron cero).
type PostStockCountResponse struct {
	Count    StockCountDetailResponse `json:"count"`
	Movement *MovementResponse        `json:"movement"`
}
