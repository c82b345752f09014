package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
// items tiene UNIQUE en sku y en name.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, sku, name, unit_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, item.UnitMeasure, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne("id = $1", id)
}

// GetBySKU obtiene un item por SKU.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	return r.getOne("sku = $1", sku)
}

func (r *ItemRepo) getOne(where string, arg any) (*entity.Item, error) {
	query := `
		SELECT id, sku, name, unit_measure, created_at, updated_at
		FROM items WHERE ` + where
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.SKU, &i.Name, &i.UnitMeasure, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// Update actualiza un item existente.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, unit_measure = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.UnitMeasure, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista items con paginación, ordenados por SKU.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, sku, name, unit_measure, created_at, updated_at
		FROM items ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListAll devuelve el catálogo completo ordenado por SKU (snapshot de conteos).
func (r *ItemRepo) ListAll() ([]*entity.Item, error) {
	query := `
		SELECT id, sku, name, unit_measure, created_at, updated_at
		FROM items ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Delete elimina un item por ID.
func (r *ItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.SKU, &i.Name, &i.UnitMeasure, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
