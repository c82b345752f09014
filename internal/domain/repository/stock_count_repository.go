package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockCountRepository define el puerto de persistencia para conteos físicos.
type StockCountRepository interface {
	// Create persiste cabecera y líneas como una sola unidad (requiere tx).
	Create(count *entity.StockCount) error
	GetByID(id string) (*entity.StockCount, error)
	// GetByIDForUpdate bloquea la cabecera del conteo (SELECT FOR UPDATE)
	// para serializar posteos concurrentes del mismo conteo.
	GetByIDForUpdate(id string) (*entity.StockCount, error)
	GetLine(lineID string) (*entity.StockCountLine, error)
	UpdateLineQty(lineID string, qty decimal.Decimal) error
	MarkPosted(id string, postedAt time.Time, postedBy string) error
	List(status string, limit, offset int) ([]*entity.StockCount, error)
}
