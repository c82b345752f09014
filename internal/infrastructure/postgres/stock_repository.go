package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La tabla stock tiene UNIQUE (item_id, location_id); fila ausente = cantidad cero.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un item en una ubicación.
func (r *StockRepo) Get(itemID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND location_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(itemID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por item y ubicación).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ItemID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByLocation lista los saldos de una ubicación.
func (r *StockRepo) ListByLocation(locationID string) ([]*entity.Stock, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM stock WHERE location_id = $1`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListAll lista todos los saldos materializados (auditoría del kardex).
func (r *StockRepo) ListAll() ([]*entity.Stock, error) {
	query := `SELECT item_id, location_id, quantity, updated_at FROM stock`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

func scanStocks(rows pgx.Rows) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
