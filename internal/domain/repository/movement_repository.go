package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del kardex (append-only).
// Los movimientos nunca se mutan ni se eliminan una vez creados.
type MovementRepository interface {
	// Create persiste cabecera y líneas como una sola unidad (requiere tx).
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	GetByReference(reference string) (*entity.Movement, error)
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// DerivedBalances reconstruye los saldos sumando las líneas del kardex
	// por (item, ubicación). Solo para auditoría, no está en el camino de escritura.
	DerivedBalances() ([]*entity.Stock, error)
}
