package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ item, location string }

type memStore struct {
	items     map[string]*entity.Item
	locations map[string]*entity.Location
	stocks    map[stockKey]*entity.Stock
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]*entity.Item{},
		locations: map[string]*entity.Location{},
		stocks:    map[stockKey]*entity.Stock{},
	}
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(i *entity.Item) error { r.s.items[i.ID] = i; return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.s.items[id], nil
}
func (r *memItemRepo) GetBySKU(string) (*entity.Item, error) { return nil, nil }
func (r *memItemRepo) Update(*entity.Item) error             { return nil }
func (r *memItemRepo) List(int, int) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) ListAll() ([]*entity.Item, error)      { return nil, nil }
func (r *memItemRepo) Delete(string) error                   { return nil }

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(l *entity.Location) error { r.s.locations[l.ID] = l; return nil }
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.s.locations[id], nil
}
func (r *memLocationRepo) GetByCode(string) (*entity.Location, error) { return nil, nil }
func (r *memLocationRepo) Update(*entity.Location) error              { return nil }
func (r *memLocationRepo) List(int, int) ([]*entity.Location, error)  { return nil, nil }
func (r *memLocationRepo) Delete(string) error                        { return nil }

type memStockRepo struct{ s *memStore }

// Get fila ausente = cantidad cero, nunca nil (mismo contrato que el store real).
func (r *memStockRepo) Get(itemID, locationID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey{itemID, locationID}]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
}
func (r *memStockRepo) GetForUpdate(itemID, locationID string) (*entity.Stock, error) {
	return r.Get(itemID, locationID)
}
func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.s.stocks[stockKey{stock.ItemID, stock.LocationID}] = &cp
	return nil
}
func (r *memStockRepo) ListByLocation(locationID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		if st.LocationID == locationID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memStockRepo) ListAll() ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	for _, existing := range r.s.movements {
		if existing.Reference == m.Reference {
			return domain.ErrDuplicateReference
		}
	}
	cp := *m
	cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *memMovementRepo) GetByReference(ref string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.Reference == ref {
			return m, nil
		}
	}
	return nil, nil
}
func (r *memMovementRepo) ListByLocation(locationID string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		for _, l := range m.Lines {
			if (l.FromLocationID != nil && *l.FromLocationID == locationID) ||
				(l.ToLocationID != nil && *l.ToLocationID == locationID) {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}
func (r *memMovementRepo) ListByItem(itemID string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		for _, l := range m.Lines {
			if l.ItemID == itemID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}
func (r *memMovementRepo) DerivedBalances() ([]*entity.Stock, error) {
	sums := map[stockKey]decimal.Decimal{}
	for _, m := range r.s.movements {
		for _, l := range m.Lines {
			if l.ToLocationID != nil {
				k := stockKey{l.ItemID, *l.ToLocationID}
				sums[k] = sums[k].Add(l.Quantity)
			}
			if l.FromLocationID != nil {
				k := stockKey{l.ItemID, *l.FromLocationID}
				sums[k] = sums[k].Sub(l.Quantity)
			}
		}
	}
	var out []*entity.Stock
	for k, q := range sums {
		out = append(out, &entity.Stock{ItemID: k.item, LocationID: k.location, Quantity: q})
	}
	return out, nil
}

// memTxRunner ejecuta el callback directamente, sin transacción real.
type memTxRunner struct{ s *memStore }

func (tx *memTxRunner) Run(_ context.Context, fn func(
	repository.MovementRepository,
	repository.StockRepository,
) error) error {
	return fn(&memMovementRepo{tx.s}, &memStockRepo{tx.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	itemA = "item-a"
	loc1  = "loc-1"
	loc2  = "loc-2"
)

func newFixture() (*ledger.LedgerUseCase, *memStore) {
	s := newMemStore()
	s.items[itemA] = &entity.Item{ID: itemA, SKU: "SKU-A", Name: "Item A"}
	s.locations[loc1] = &entity.Location{ID: loc1, Code: "BOD-01", Kind: entity.LocationKindWarehouse}
	s.locations[loc2] = &entity.Location{ID: loc2, Code: "TDA-01", Kind: entity.LocationKindStore}

	uc := ledger.NewLedgerUseCase(
		&memTxRunner{s},
		&memItemRepo{s},
		&memLocationRepo{s},
		&memMovementRepo{s},
		&memStockRepo{s},
	)
	return uc, s
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func appendIn(t *testing.T, uc *ledger.LedgerUseCase, ref string, q int64) {
	t.Helper()
	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeIN,
		Reference: ref,
		Lines:     []ledger.LineInput{{ItemID: itemA, ToLocationID: loc1, Quantity: qty(q)}},
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// AppendMovement — escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_EntradaActualizaSaldo(t *testing.T) {
	uc, s := newFixture()
	out, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeIN,
		Reference: "RCV-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, ToLocationID: loc1, Quantity: qty(5)}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeIN, out.Type)
	assert.True(t, out.Posted)
	require.Len(t, out.Lines, 1)
	assert.True(t, s.stocks[stockKey{itemA, loc1}].Quantity.Equal(qty(5)))
}

func TestAppend_SalidaDescuentaSaldo(t *testing.T) {
	uc, s := newFixture()
	appendIn(t, uc, "RCV-001", 10)

	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeOUT,
		Reference: "DSP-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, Quantity: qty(4)}},
	})
	require.NoError(t, err)
	assert.True(t, s.stocks[stockKey{itemA, loc1}].Quantity.Equal(qty(6)))
}

func TestAppend_SalidaInsuficiente(t *testing.T) {
	uc, _ := newFixture()
	appendIn(t, uc, "RCV-001", 3)

	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeOUT,
		Reference: "DSP-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, Quantity: qty(4)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAppend_TrasladoMueveEntreUbicaciones(t *testing.T) {
	uc, s := newFixture()
	appendIn(t, uc, "RCV-001", 10)

	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeTRANSFER,
		Reference: "TRF-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, ToLocationID: loc2, Quantity: qty(4)}},
	})
	require.NoError(t, err)
	assert.True(t, s.stocks[stockKey{itemA, loc1}].Quantity.Equal(qty(6)))
	assert.True(t, s.stocks[stockKey{itemA, loc2}].Quantity.Equal(qty(4)))
}

// El ajuste puede dejar saldo negativo: representa merma real aún no contada.
func TestAppend_AjustePermiteSaldoNegativo(t *testing.T) {
	uc, s := newFixture()
	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeADJUST,
		Reference: "ADJ-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, Quantity: qty(5)}},
	})
	require.NoError(t, err)
	assert.True(t, s.stocks[stockKey{itemA, loc1}].Quantity.Equal(qty(-5)))
}

func TestAppend_ReferenciaDuplicada(t *testing.T) {
	uc, _ := newFixture()
	appendIn(t, uc, "RCV-001", 5)

	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeIN,
		Reference: "RCV-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, ToLocationID: loc1, Quantity: qty(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
}

func TestAppend_ValidaEntrada(t *testing.T) {
	uc, _ := newFixture()

	cases := []struct {
		name string
		in   ledger.AppendInput
		want error
	}{
		{
			name: "sin referencia",
			in: ledger.AppendInput{
				Type:  entity.MovementTypeIN,
				Lines: []ledger.LineInput{{ItemID: itemA, ToLocationID: loc1, Quantity: qty(1)}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "sin líneas",
			in:   ledger.AppendInput{Type: entity.MovementTypeIN, Reference: "X-1"},
			want: domain.ErrInvalidInput,
		},
		{
			name: "cantidad cero",
			in: ledger.AppendInput{
				Type: entity.MovementTypeIN, Reference: "X-2",
				Lines: []ledger.LineInput{{ItemID: itemA, ToLocationID: loc1, Quantity: decimal.Zero}},
			},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "entrada con origen",
			in: ledger.AppendInput{
				Type: entity.MovementTypeIN, Reference: "X-3",
				Lines: []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, ToLocationID: loc2, Quantity: qty(1)}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "salida con destino",
			in: ledger.AppendInput{
				Type: entity.MovementTypeOUT, Reference: "X-4",
				Lines: []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, ToLocationID: loc2, Quantity: qty(1)}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "traslado a la misma ubicación",
			in: ledger.AppendInput{
				Type: entity.MovementTypeTRANSFER, Reference: "X-5",
				Lines: []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, ToLocationID: loc1, Quantity: qty(1)}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "ajuste con ambos lados",
			in: ledger.AppendInput{
				Type: entity.MovementTypeADJUST, Reference: "X-6",
				Lines: []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, ToLocationID: loc2, Quantity: qty(1)}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "tipo desconocido",
			in: ledger.AppendInput{
				Type: "MAGIA", Reference: "X-7",
				Lines: []ledger.LineInput{{ItemID: itemA, ToLocationID: loc1, Quantity: qty(1)}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "item inexistente",
			in: ledger.AppendInput{
				Type: entity.MovementTypeIN, Reference: "X-8",
				Lines: []ledger.LineInput{{ItemID: "fantasma", ToLocationID: loc1, Quantity: qty(1)}},
			},
			want: domain.ErrNotFound,
		},
		{
			name: "ubicación inexistente",
			in: ledger.AppendInput{
				Type: entity.MovementTypeIN, Reference: "X-9",
				Lines: []ledger.LineInput{{ItemID: itemA, ToLocationID: "fantasma", Quantity: qty(1)}},
			},
			want: domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AppendMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestGetMovement_NoEncontrado(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.GetMovement(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBalances_UbicacionInexistente(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Balances(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBalances_DevuelveSaldos(t *testing.T) {
	uc, _ := newFixture()
	appendIn(t, uc, "RCV-001", 7)

	out, err := uc.Balances(context.Background(), loc1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, itemA, out[0].ItemID)
	assert.True(t, out[0].Quantity.Equal(qty(7)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Audit — integridad kardex vs saldo materializado
// ──────────────────────────────────────────────────────────────────────────────

func TestAudit_ConsistenteTrasMovimientos(t *testing.T) {
	uc, _ := newFixture()
	appendIn(t, uc, "RCV-001", 10)
	_, err := uc.AppendMovement(context.Background(), ledger.AppendInput{
		Type:      entity.MovementTypeTRANSFER,
		Reference: "TRF-001",
		Lines:     []ledger.LineInput{{ItemID: itemA, FromLocationID: loc1, ToLocationID: loc2, Quantity: qty(4)}},
	})
	require.NoError(t, err)

	out, err := uc.Audit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Consistent)
	assert.Empty(t, out.Mismatches)
}

func TestAudit_DetectaSaldoCorrupto(t *testing.T) {
	uc, s := newFixture()
	appendIn(t, uc, "RCV-001", 10)

	// Corrupción simulada: alguien tocó el saldo materializado sin pasar por el kardex.
	s.stocks[stockKey{itemA, loc1}].Quantity = qty(99)

	out, err := uc.Audit(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Consistent)
	require.Len(t, out.Mismatches, 1)
	assert.True(t, out.Mismatches[0].BookQty.Equal(qty(99)))
	assert.True(t, out.Mismatches[0].DerivedQty.Equal(qty(10)))
}

func TestAudit_DetectaFilaSinRespaldo(t *testing.T) {
	uc, s := newFixture()

	// Fila materializada sin ninguna línea del kardex que la respalde.
	s.stocks[stockKey{itemA, loc1}] = &entity.Stock{
		ItemID: itemA, LocationID: loc1, Quantity: qty(5), UpdatedAt: time.Now(),
	}

	out, err := uc.Audit(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Consistent)
	require.Len(t, out.Mismatches, 1)
	assert.True(t, out.Mismatches[0].DerivedQty.IsZero())
}
