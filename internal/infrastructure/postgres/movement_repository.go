package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// movements.reference tiene constraint UNIQUE: la unicidad de referencia la
// decide el store, no un chequeo de aplicación.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste cabecera y líneas. Llamar siempre dentro de una tx para que
// la unidad sea indivisible. Colisión de referencia -> ErrDuplicateReference.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, reference, note, posted, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.Reference, movement.Note,
		movement.Posted, movement.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert movement: %w", err)
	}

	lineQuery := `
		INSERT INTO movement_lines (id, movement_id, item_id, from_location_id, to_location_id, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range movement.Lines {
		line := &movement.Lines[i]
		line.MovementID = movement.ID
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.MovementID, line.ItemID, line.FromLocationID, line.ToLocationID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	return r.getOne("id = $1", id)
}

// GetByReference obtiene un movimiento por su referencia única.
func (r *MovementRepo) GetByReference(reference string) (*entity.Movement, error) {
	return r.getOne("reference = $1", reference)
}

func (r *MovementRepo) getOne(where string, arg any) (*entity.Movement, error) {
	query := `
		SELECT id, type, reference, note, posted, created_at, created_by
		FROM movements WHERE ` + where
	var m entity.Movement
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Type, &m.Reference, &m.Note, &m.Posted, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	if err := r.loadLines(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByLocation lista movimientos cuyas líneas tocan una ubicación,
// en un rango de fechas opcional.
func (r *MovementRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT DISTINCT m.id, m.type, m.reference, m.note, m.posted, m.created_at, m.created_by
		FROM movements m
		JOIN movement_lines l ON l.movement_id = m.id
		WHERE (l.from_location_id = $1 OR l.to_location_id = $1)`
	return r.list(query, locationID, from, to, limit, offset)
}

// ListByItem lista movimientos cuyas líneas tocan un item, en un rango de fechas opcional.
func (r *MovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT DISTINCT m.id, m.type, m.reference, m.note, m.posted, m.created_at, m.created_by
		FROM movements m
		JOIN movement_lines l ON l.movement_id = m.id
		WHERE l.item_id = $1`
	return r.list(query, itemID, from, to, limit, offset)
}

func (r *MovementRepo) list(query string, arg any, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	args := []any{arg}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.Type, &m.Reference, &m.Note, &m.Posted, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		if err := r.loadLines(m); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *MovementRepo) loadLines(m *entity.Movement) error {
	query := `
		SELECT id, movement_id, item_id, from_location_id, to_location_id, quantity
		FROM movement_lines WHERE movement_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, m.ID)
	if err != nil {
		return fmt.Errorf("load movement lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.MovementID, &l.ItemID, &l.FromLocationID, &l.ToLocationID, &l.Quantity); err != nil {
			return fmt.Errorf("scan movement line: %w", err)
		}
		m.Lines = append(m.Lines, l)
	}
	return rows.Err()
}

// DerivedBalances reconstruye los saldos por (item, ubicación) sumando las
// líneas del kardex: entradas positivas, salidas negativas. Solo auditoría.
func (r *MovementRepo) DerivedBalances() ([]*entity.Stock, error) {
	query := `
		SELECT item_id, location_id, SUM(qty) AS quantity
		FROM (
			SELECT item_id, to_location_id AS location_id, quantity AS qty
			FROM movement_lines WHERE to_location_id IS NOT NULL
			UNION ALL
			SELECT item_id, from_location_id AS location_id, quantity * -1 AS qty
			FROM movement_lines WHERE from_location_id IS NOT NULL
		) deltas
		GROUP BY item_id, location_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("derive balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ItemID, &s.LocationID, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan derived balance: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
