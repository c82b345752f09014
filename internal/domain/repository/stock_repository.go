package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// StockRepository define el puerto para el saldo actual por (item, ubicación).
// Fila ausente equivale a cantidad cero. Usado dentro de transacciones para
// garantizar consistencia con el kardex.
type StockRepository interface {
	Get(itemID, locationID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID, locationID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByLocation(locationID string) ([]*entity.Stock, error)
	ListAll() ([]*entity.Stock, error)
}
