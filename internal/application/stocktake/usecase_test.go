package stocktake_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/stocktake"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ item, location string }

// memStore estado compartido por los repos fake.
type memStore struct {
	items     []*entity.Item
	locations map[string]*entity.Location
	stocks    map[stockKey]*entity.Stock
	movements []*entity.Movement
	counts    map[string]*entity.StockCount
}

func newMemStore() *memStore {
	return &memStore{
		locations: map[string]*entity.Location{},
		stocks:    map[stockKey]*entity.Stock{},
		counts:    map[string]*entity.StockCount{},
	}
}

func (s *memStore) setStock(itemID, locationID string, qty decimal.Decimal) {
	s.stocks[stockKey{itemID, locationID}] = &entity.Stock{
		ItemID: itemID, LocationID: locationID, Quantity: qty, UpdatedAt: time.Now(),
	}
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.s.items = append(r.s.items, item)
	return nil
}
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}
func (r *memItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.SKU == sku {
			return it, nil
		}
	}
	return nil, nil
}
func (r *memItemRepo) Update(*entity.Item) error { return nil }
func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	return r.ListAll()
}
func (r *memItemRepo) ListAll() ([]*entity.Item, error) {
	out := append([]*entity.Item(nil), r.s.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}
func (r *memItemRepo) Delete(string) error { return nil }

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(l *entity.Location) error {
	r.s.locations[l.ID] = l
	return nil
}
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.s.locations[id], nil
}
func (r *memLocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, nil
}
func (r *memLocationRepo) Update(*entity.Location) error { return nil }
func (r *memLocationRepo) List(int, int) ([]*entity.Location, error) {
	return nil, nil
}
func (r *memLocationRepo) Delete(string) error { return nil }

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
func (r *memMovementRepo) ListByLocation(string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return r.s.movements, nil
}
func (r *memMovementRepo) ListByItem(string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return r.s.movements, nil
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

type memCountRepo struct{ s *memStore }

func copyCount(c *entity.StockCount) *entity.StockCount {
	cp := *c
	cp.Lines = append([]entity.StockCountLine(nil), c.Lines...)
	return &cp
}

func (r *memCountRepo) Create(count *entity.StockCount) error {
	for _, existing := range r.s.counts {
		if existing.Reference == count.Reference {
			return domain.ErrDuplicateReference
		}
	}
	r.s.counts[count.ID] = copyCount(count)
	return nil
}
func (r *memCountRepo) GetByID(id string) (*entity.StockCount, error) {
	c, ok := r.s.counts[id]
	if !ok {
		return nil, nil
	}
	return copyCount(c), nil
}
func (r *memCountRepo) GetByIDForUpdate(id string) (*entity.StockCount, error) {
	return r.GetByID(id)
}
func (r *memCountRepo) GetLine(lineID string) (*entity.StockCountLine, error) {
	for _, c := range r.s.counts {
		for _, l := range c.Lines {
			if l.ID == lineID {
				cp := l
				return &cp, nil
			}
		}
	}
	return nil, nil
}
func (r *memCountRepo) UpdateLineQty(lineID string, qty decimal.Decimal) error {
	for _, c := range r.s.counts {
		for i := range c.Lines {
			if c.Lines[i].ID == lineID {
				c.Lines[i].CountedQty = qty
				return nil
			}
		}
	}
	return domain.ErrNotFound
}
func (r *memCountRepo) MarkPosted(id string, postedAt time.Time, postedBy string) error {
	c, ok := r.s.counts[id]
	if !ok || c.Status != entity.StockCountStatusDraft {
		return domain.ErrAlreadyPosted
	}
	c.Status = entity.StockCountStatusPosted
	c.PostedAt = &postedAt
	c.PostedBy = postedBy
	return nil
}
func (r *memCountRepo) List(status string, limit, offset int) ([]*entity.StockCount, error) {
	var out []*entity.StockCount
	for _, c := range r.s.counts {
		if status == "" || c.Status == status {
			out = append(out, copyCount(c))
		}
	}
	return out, nil
}

// memTxRunner ejecuta el callback directamente, sin transacción real.
type memTxRunner struct{ s *memStore }

func (tx *memTxRunner) RunCount(_ context.Context, fn func(
	repository.MovementRepository,
	repository.StockRepository,
	repository.StockCountRepository,
) error) error {
	return fn(&memMovementRepo{tx.s}, &memStockRepo{tx.s}, &memCountRepo{tx.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	locID  = "loc-1"
	itemA  = "item-a"
	itemB  = "item-b"
	userID = "user-1"
)

// newFixture prepara: ubicación loc-1, items A (saldo 10) y B (sin fila = cero).
func newFixture() (*stocktake.StockTakeUseCase, *memStore) {
	s := newMemStore()
	s.locations[locID] = &entity.Location{ID: locID, Code: "BOD-01", Name: "Bodega principal", Kind: entity.LocationKindWarehouse}
	s.items = append(s.items,
		&entity.Item{ID: itemA, SKU: "SKU-A", Name: "Item A", UnitMeasure: "und"},
		&entity.Item{ID: itemB, SKU: "SKU-B", Name: "Item B", UnitMeasure: "und"},
	)
	s.setStock(itemA, locID, decimal.NewFromInt(10))

	uc := stocktake.NewStockTakeUseCase(
		&memTxRunner{s},
		&memItemRepo{s},
		&memLocationRepo{s},
		&memStockRepo{s},
		&memCountRepo{s},
	)
	return uc, s
}

func createDraft(t *testing.T, uc *stocktake.StockTakeUseCase, includeZero bool) *dtoDetail {
	t.Helper()
	out, err := uc.Create(context.Background(), stocktake.CreateInput{
		LocationID:          locID,
		Reference:           "CNT-TEST",
		IncludeZeroBalances: includeZero,
		UserID:              userID,
	})
	require.NoError(t, err)
	return &dtoDetail{out}
}

// dtoDetail azúcar para localizar líneas por item en los asserts.
type dtoDetail struct {
	*dto.StockCountDetailResponse
}

func (d *dtoDetail) lineFor(itemID string) (string, decimal.Decimal) {
	for _, l := range d.Lines {
		if l.ItemID == itemID {
			return l.ID, l.CountedQty
		}
	}
	return "", decimal.Zero
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OmiteItemsConSaldoCero(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)

	assert.Equal(t, entity.StockCountStatusDraft, out.Status)
	require.Len(t, out.Lines, 1, "solo el item con saldo distinto de cero debe tener línea")
	assert.Equal(t, itemA, out.Lines[0].ItemID)
	assert.True(t, out.Lines[0].CountedQty.IsZero(), "la cantidad contada inicia en cero")
	assert.True(t, out.Lines[0].BookQty.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.Lines[0].Diff.Equal(decimal.NewFromInt(-10)), "diff = counted - book")
}

func TestCreate_IncluyeSaldosCero(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, true)

	require.Len(t, out.Lines, 2, "con include_zero_balances el catálogo completo tiene línea")
	// Ordenadas por SKU
	assert.Equal(t, itemA, out.Lines[0].ItemID)
	assert.Equal(t, itemB, out.Lines[1].ItemID)
	assert.True(t, out.Lines[1].BookQty.IsZero(), "fila de stock ausente equivale a cero")
}

func TestCreate_UbicacionInexistente(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Create(context.Background(), stocktake.CreateInput{LocationID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ReferenciaDuplicada(t *testing.T) {
	uc, _ := newFixture()
	createDraft(t, uc, false)

	_, err := uc.Create(context.Background(), stocktake.CreateInput{
		LocationID: locID,
		Reference:  "CNT-TEST",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
}

func TestCreate_GeneraReferenciaSiVieneVacia(t *testing.T) {
	uc, _ := newFixture()
	out, err := uc.Create(context.Background(), stocktake.CreateInput{LocationID: locID})
	require.NoError(t, err)
	assert.Contains(t, out.Reference, "CNT-", "la referencia generada lleva el prefijo CNT-")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateLine
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateLine_FijaCantidadContada(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)

	line, err := uc.UpdateLine(context.Background(), lineID, "8")
	require.NoError(t, err)
	assert.True(t, line.CountedQty.Equal(decimal.NewFromInt(8)))
	assert.True(t, line.BookQty.Equal(decimal.NewFromInt(10)), "book se relee del stock vivo")
	assert.True(t, line.Diff.Equal(decimal.NewFromInt(-2)))
}

func TestUpdateLine_AceptaComaDecimal(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)

	line, err := uc.UpdateLine(context.Background(), lineID, "8,5")
	require.NoError(t, err)
	assert.True(t, line.CountedQty.Equal(decimal.RequireFromString("8.5")))
}

func TestUpdateLine_RechazaNegativos(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)

	_, err := uc.UpdateLine(context.Background(), lineID, "-3")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity,
		"un conteo físico no puede observar cantidades negativas")
}

func TestUpdateLine_RechazaTextoNoNumerico(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)

	_, err := uc.UpdateLine(context.Background(), lineID, "ocho")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateLine_LineaInexistente(t *testing.T) {
	uc, _ := newFixture()
	createDraft(t, uc, false)

	_, err := uc.UpdateLine(context.Background(), "no-existe", "5")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateLine_ConteoPosteadoEsInmutable(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)

	_, err := uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)

	_, err = uc.UpdateLine(context.Background(), lineID, "9")
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetDetail — libros vivos
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDetail_RecalculaLibrosVivos(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, false)

	// El stock cambia después de crear el conteo (p.ej. una salida concurrente).
	s.setStock(itemA, locID, decimal.NewFromInt(7))

	detail, err := uc.GetDetail(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.True(t, detail.Lines[0].BookQty.Equal(decimal.NewFromInt(7)),
		"book debe releerse del stock vivo, no del snapshot de creación")
}

func TestGetDetail_NoEncontrado(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.GetDetail(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Post — reconciliación
// ──────────────────────────────────────────────────────────────────────────────

// Escenario completo: saldo A=10, B=0; conteo sin saldos cero; A contado en 8.
// El posteo debe generar un único ADJUST con una salida de 2 y dejar Stock(A)=8.
func TestPost_FaltanteGeneraSalidaYActualizaStock(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)
	_, err := uc.UpdateLine(context.Background(), lineID, "8")
	require.NoError(t, err)

	res, err := uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, entity.StockCountStatusPosted, res.Count.Status)
	assert.NotNil(t, res.Count.PostedAt)
	assert.Equal(t, userID, res.Count.PostedBy)

	require.NotNil(t, res.Movement, "diferencia no nula debe generar movimiento")
	assert.Equal(t, entity.MovementTypeADJUST, res.Movement.Type)
	assert.Equal(t, "ADJ-CNT-TEST", res.Movement.Reference, "referencia por defecto ADJ-<ref del conteo>")
	require.Len(t, res.Movement.Lines, 1)

	ml := res.Movement.Lines[0]
	assert.Equal(t, itemA, ml.ItemID)
	require.NotNil(t, ml.FromLocationID, "faltante = salida desde la ubicación contada")
	assert.Equal(t, locID, *ml.FromLocationID)
	assert.Nil(t, ml.ToLocationID)
	assert.True(t, ml.Quantity.Equal(decimal.NewFromInt(2)), "magnitud = |diff|")

	st := s.stocks[stockKey{itemA, locID}]
	require.NotNil(t, st)
	assert.True(t, st.Quantity.Equal(decimal.NewFromInt(8)), "el saldo queda en la cantidad contada")
}

func TestPost_SobranteGeneraEntrada(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)
	_, err := uc.UpdateLine(context.Background(), lineID, "12")
	require.NoError(t, err)

	res, err := uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)

	require.NotNil(t, res.Movement)
	require.Len(t, res.Movement.Lines, 1)
	ml := res.Movement.Lines[0]
	require.NotNil(t, ml.ToLocationID, "sobrante = entrada hacia la ubicación contada")
	assert.Equal(t, locID, *ml.ToLocationID)
	assert.Nil(t, ml.FromLocationID)
	assert.True(t, ml.Quantity.Equal(decimal.NewFromInt(2)))

	assert.True(t, s.stocks[stockKey{itemA, locID}].Quantity.Equal(decimal.NewFromInt(12)))
}

func TestPost_DiferenciasCero_SellaSinMovimiento(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)
	_, err := uc.UpdateLine(context.Background(), lineID, "10") // igual al libro
	require.NoError(t, err)

	res, err := uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, entity.StockCountStatusPosted, res.Count.Status)
	assert.Nil(t, res.Movement, "sin diferencias no se genera movimiento")
	assert.Empty(t, s.movements, "el kardex no debe recibir movimientos vacíos")
	assert.True(t, s.stocks[stockKey{itemA, locID}].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestPost_EsIdempotenteEnConflicto(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)
	_, err := uc.UpdateLine(context.Background(), lineID, "8")
	require.NoError(t, err)

	_, err = uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)

	_, err = uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted, "el segundo posteo debe rechazarse")

	assert.Len(t, s.movements, 1, "no debe duplicarse el ajuste")
	assert.True(t, s.stocks[stockKey{itemA, locID}].Quantity.Equal(decimal.NewFromInt(8)),
		"el saldo no debe volver a ajustarse")
}

func TestPost_NoEncontrado(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Post(context.Background(), stocktake.PostInput{CountID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_ReferenciaDeAjusteExplicita(t *testing.T) {
	uc, _ := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)
	_, err := uc.UpdateLine(context.Background(), lineID, "8")
	require.NoError(t, err)

	res, err := uc.Post(context.Background(), stocktake.PostInput{
		CountID:           out.ID,
		MovementReference: "AJUSTE-2026-001",
		UserID:            userID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Movement)
	assert.Equal(t, "AJUSTE-2026-001", res.Movement.Reference)
}

// El posteo usa el saldo vivo al momento de postear, no el de la creación.
func TestPost_DiffContraSaldoVivo(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, false)
	lineID, _ := out.lineFor(itemA)
	_, err := uc.UpdateLine(context.Background(), lineID, "8")
	require.NoError(t, err)

	// Entre la edición y el posteo, el saldo baja de 10 a 9.
	s.setStock(itemA, locID, decimal.NewFromInt(9))

	res, err := uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)
	require.NotNil(t, res.Movement)
	require.Len(t, res.Movement.Lines, 1)
	assert.True(t, res.Movement.Lines[0].Quantity.Equal(decimal.NewFromInt(1)),
		"diff = contado(8) - vivo(9) = -1")
	assert.True(t, s.stocks[stockKey{itemA, locID}].Quantity.Equal(decimal.NewFromInt(8)))
}

// Conteo con include_zero_balances y línea de item sin saldo: contar unidades
// de un item con libro cero produce un sobrante puro.
func TestPost_ItemSinSaldoContadoProduceSobrante(t *testing.T) {
	uc, s := newFixture()
	out := createDraft(t, uc, true)
	lineB, _ := out.lineFor(itemB)
	_, err := uc.UpdateLine(context.Background(), lineB, "3")
	require.NoError(t, err)
	// La línea de A queda contada en su libro para no generar ruido.
	lineA, _ := out.lineFor(itemA)
	_, err = uc.UpdateLine(context.Background(), lineA, "10")
	require.NoError(t, err)

	res, err := uc.Post(context.Background(), stocktake.PostInput{CountID: out.ID, UserID: userID})
	require.NoError(t, err)
	require.NotNil(t, res.Movement)
	require.Len(t, res.Movement.Lines, 1, "solo la diferencia de B genera línea")
	assert.Equal(t, itemB, res.Movement.Lines[0].ItemID)
	assert.True(t, s.stocks[stockKey{itemB, locID}].Quantity.Equal(decimal.NewFromInt(3)))
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorEstado(t *testing.T) {
	uc, _ := newFixture()
	first := createDraft(t, uc, false)
	_, err := uc.Create(context.Background(), stocktake.CreateInput{
		LocationID: locID, Reference: "CNT-OTRO",
	})
	require.NoError(t, err)

	_, err = uc.Post(context.Background(), stocktake.PostInput{CountID: first.ID, UserID: userID})
	require.NoError(t, err)

	drafts, err := uc.List(context.Background(), entity.StockCountStatusDraft, 20, 0)
	require.NoError(t, err)
	require.Len(t, drafts.Items, 1)
	assert.Equal(t, "CNT-OTRO", drafts.Items[0].Reference)

	posted, err := uc.List(context.Background(), entity.StockCountStatusPosted, 20, 0)
	require.NoError(t, err)
	require.Len(t, posted.Items, 1)
	assert.Equal(t, "CNT-TEST", posted.Items[0].Reference)
}
