package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

// StockCountRepo implementación de StockCountRepository sobre PostgreSQL.
// stock_counts.reference tiene constraint UNIQUE y stock_count_lines
// UNIQUE (stock_count_id, item_id); las líneas se eliminan en cascada.
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

// Create persiste cabecera y líneas. Llamar dentro de una tx.
// Colisión de referencia -> ErrDuplicateReference.
func (r *StockCountRepo) Create(count *entity.StockCount) error {
	query := `
		INSERT INTO stock_counts (id, reference, status, location_id, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if count.CreatedBy != "" {
		createdBy = &count.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.Reference, count.Status, count.LocationID, count.Note,
		count.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert stock count: %w", err)
	}

	lineQuery := `
		INSERT INTO stock_count_lines (id, stock_count_id, item_id, counted_qty)
		VALUES ($1, $2, $3, $4)`
	for i := range count.Lines {
		line := &count.Lines[i]
		line.StockCountID = count.ID
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.StockCountID, line.ItemID, line.CountedQty,
		)
		if err != nil {
			return fmt.Errorf("insert stock count line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un conteo con sus líneas (ordenadas por SKU del item).
func (r *StockCountRepo) GetByID(id string) (*entity.StockCount, error) {
	return r.getOne(id, false)
}

// GetByIDForUpdate como GetByID pero bloquea la cabecera (SELECT FOR UPDATE)
// para serializar posteos concurrentes del mismo conteo.
func (r *StockCountRepo) GetByIDForUpdate(id string) (*entity.StockCount, error) {
	return r.getOne(id, true)
}

func (r *StockCountRepo) getOne(id string, forUpdate bool) (*entity.StockCount, error) {
	query := `
		SELECT id, reference, status, location_id, note, created_at, created_by, posted_at, posted_by
		FROM stock_counts WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var c entity.StockCount
	var createdBy, postedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Reference, &c.Status, &c.LocationID, &c.Note,
		&c.CreatedAt, &createdBy, &c.PostedAt, &postedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock count: %w", err)
	}
	if createdBy != nil {
		c.CreatedBy = *createdBy
	}
	if postedBy != nil {
		c.PostedBy = *postedBy
	}

	lineQuery := `
		SELECT l.id, l.stock_count_id, l.item_id, l.counted_qty
		FROM stock_count_lines l
		JOIN items i ON i.id = l.item_id
		WHERE l.stock_count_id = $1
		ORDER BY i.sku`
	rows, err := r.q.Query(context.Background(), lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("load stock count lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.StockCountLine
		if err := rows.Scan(&l.ID, &l.StockCountID, &l.ItemID, &l.CountedQty); err != nil {
			return nil, fmt.Errorf("scan stock count line: %w", err)
		}
		c.Lines = append(c.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetLine obtiene una línea por ID.
func (r *StockCountRepo) GetLine(lineID string) (*entity.StockCountLine, error) {
	query := `
		SELECT id, stock_count_id, item_id, counted_qty
		FROM stock_count_lines WHERE id = $1`
	var l entity.StockCountLine
	err := r.q.QueryRow(context.Background(), query, lineID).Scan(
		&l.ID, &l.StockCountID, &l.ItemID, &l.CountedQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock count line: %w", err)
	}
	return &l, nil
}

// UpdateLineQty fija la cantidad contada de una línea (sobrescritura simple).
func (r *StockCountRepo) UpdateLineQty(lineID string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_count_lines SET counted_qty = $2 WHERE id = $1`, lineID, qty)
	if err != nil {
		return fmt.Errorf("update stock count line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkPosted sella el conteo: draft -> posted exactamente una vez.
// La condición status = 'draft' hace la transición idempotente a nivel de store.
func (r *StockCountRepo) MarkPosted(id string, postedAt time.Time, postedBy string) error {
	by := (*string)(nil)
	if postedBy != "" {
		by = &postedBy
	}
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE stock_counts SET status = $2, posted_at = $3, posted_by = $4
		WHERE id = $1 AND status = $5`,
		id, entity.StockCountStatusPosted, postedAt, by, entity.StockCountStatusDraft)
	if err != nil {
		return fmt.Errorf("mark stock count posted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyPosted
	}
	return nil
}

// List lista conteos (cabeceras), opcionalmente filtrados por estado.
func (r *StockCountRepo) List(status string, limit, offset int) ([]*entity.StockCount, error) {
	query := `
		SELECT id, reference, status, location_id, note, created_at, created_by, posted_at, posted_by
		FROM stock_counts`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock counts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockCount
	for rows.Next() {
		var c entity.StockCount
		var createdBy, postedBy *string
		if err := rows.Scan(&c.ID, &c.Reference, &c.Status, &c.LocationID, &c.Note,
			&c.CreatedAt, &createdBy, &c.PostedAt, &postedBy); err != nil {
			return nil, fmt.Errorf("scan stock count: %w", err)
		}
		if createdBy != nil {
			c.CreatedBy = *createdBy
		}
		if postedBy != nil {
			c.PostedBy = *postedBy
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
