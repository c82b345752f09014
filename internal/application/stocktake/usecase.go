package stocktake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/qty"
)

// StockTakeUseCase orquesta el ciclo de vida de los conteos físicos:
// crear (snapshot del catálogo y saldos), editar cantidades contadas,
// consultar con libros vivos y postear la reconciliación de forma atómica.
type StockTakeUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	stockRepo    repository.StockRepository
	countRepo    repository.StockCountRepository
}

// NewStockTakeUseCase construye el caso de uso.
func NewStockTakeUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
	countRepo repository.StockCountRepository,
) *StockTakeUseCase {
	return &StockTakeUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		stockRepo:    stockRepo,
		countRepo:    countRepo,
	}
}

// CreateInput entrada para crear un conteo físico.
type CreateInput struct {
	LocationID          string
	Reference           string // vacío = generado desde la fecha actual
	Note                string
	IncludeZeroBalances bool
	UserID              string
}

// Create crea un conteo en estado draft: valida la ubicación, toma un snapshot
// del catálogo completo y de los saldos de la ubicación, y genera una línea por
// item con CountedQty = 0. Si IncludeZeroBalances es false, los items con saldo
// exactamente cero se omiten. La cantidad en libros no se persiste en las
// líneas: siempre se relee del stock vivo.
func (uc *StockTakeUseCase) Create(ctx context.Context, in CreateInput) (*dto.StockCountDetailResponse, error) {
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.itemRepo.ListAll()
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.ListByLocation(in.LocationID)
	if err != nil {
		return nil, err
	}
	balances := make(map[string]decimal.Decimal, len(stocks))
	for _, s := range stocks {
		balances[s.ItemID] = s.Quantity
	}

	now := time.Now()
	reference := in.Reference
	if reference == "" {
		reference = "CNT-" + now.Format("20060102-150405")
	}

	count := &entity.StockCount{
		ID:         uuid.New().String(),
		Reference:  reference,
		Status:     entity.StockCountStatusDraft,
		LocationID: in.LocationID,
		Note:       in.Note,
		CreatedAt:  now,
		CreatedBy:  in.UserID,
	}
	for _, item := range items {
		if !in.IncludeZeroBalances && balances[item.ID].IsZero() {
			continue
		}
		count.Lines = append(count.Lines, entity.StockCountLine{
			ID:           uuid.New().String(),
			StockCountID: count.ID,
			ItemID:       item.ID,
			CountedQty:   decimal.Zero,
		})
	}

	// Cabecera + líneas en una sola transacción; la unicidad de la referencia
	// la garantiza el constraint del store (no un chequeo previo con carrera).
	err = uc.txRunner.RunCount(ctx, func(
		_ repository.MovementRepository,
		_ repository.StockRepository,
		countRepo repository.StockCountRepository,
	) error {
		return countRepo.Create(count)
	})
	if err != nil {
		return nil, err
	}
	return uc.toDetail(count, balances, items), nil
}

// UpdateLine fija la cantidad contada de una línea mientras el conteo está en
// draft. La cantidad llega como texto y se parsea a decimal exacto; los valores
// negativos se rechazan (un conteo físico no puede observar cantidades negativas).
// Ediciones concurrentes sobre la misma línea son last-write-wins.
func (uc *StockTakeUseCase) UpdateLine(ctx context.Context, lineID, countedQty string) (*dto.StockCountLineDetail, error) {
	parsed, err := qty.ParseNonNegative(countedQty)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}

	var line *entity.StockCountLine
	var locationID string
	err = uc.txRunner.RunCount(ctx, func(
		_ repository.MovementRepository,
		_ repository.StockRepository,
		countRepo repository.StockCountRepository,
	) error {
		l, err := countRepo.GetLine(lineID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		count, err := countRepo.GetByIDForUpdate(l.StockCountID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if count.IsPosted() {
			return domain.ErrAlreadyPosted
		}
		if err := countRepo.UpdateLineQty(lineID, parsed); err != nil {
			return err
		}
		l.CountedQty = parsed
		line = l
		locationID = count.LocationID
		return nil
	})
	if err != nil {
		return nil, err
	}

	book, err := uc.bookQty(line.ItemID, locationID)
	if err != nil {
		return nil, err
	}
	detail := toLineDetail(*line, book, nil)
	return &detail, nil
}

// GetDetail devuelve el conteo con, por línea, la cantidad en libros VIVA
// (releída del stock en este momento, no el snapshot de creación) y
// diff = counted - book.
func (uc *StockTakeUseCase) GetDetail(ctx context.Context, id string) (*dto.StockCountDetailResponse, error) {
	count, err := uc.countRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	balances, err := uc.liveBalances(count)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return uc.toDetail(count, balances, items), nil
}

// List lista conteos (opcionalmente filtrados por estado) con paginación.
func (uc *StockTakeUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.StockCountListResponse, error) {
	counts, err := uc.countRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockCountSummary, 0, len(counts))
	for _, c := range counts {
		items = append(items, dto.StockCountSummary{
			ID:         c.ID,
			Reference:  c.Reference,
			Status:     c.Status,
			LocationID: c.LocationID,
			CreatedAt:  c.CreatedAt,
			PostedAt:   c.PostedAt,
		})
	}
	return &dto.StockCountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// PostInput entrada para postear (reconciliar) un conteo.
type PostInput struct {
	CountID           string
	MovementReference string // default ADJ-<referencia del conteo>
	MovementNote      string
	UserID            string
}

// Post ejecuta la reconciliación de forma atómica: relee el conteo con bloqueo,
// recalcula cada diferencia contra el saldo vivo (nunca contra el snapshot de
// creación), genera un único movimiento ADJUST con una línea por diferencia no
// nula, actualiza el stock a la cantidad contada y sella el conteo. Todo dentro
// de una transacción: o se confirma completo o no se aplica nada. Si todas las
// diferencias son cero, el conteo se sella sin generar movimiento.
func (uc *StockTakeUseCase) Post(ctx context.Context, in PostInput) (*dto.PostStockCountResponse, error) {
	var (
		posted   *entity.StockCount
		movement *entity.Movement
		balances map[string]decimal.Decimal
	)

	err := uc.txRunner.RunCount(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		countRepo repository.StockCountRepository,
	) error {
		count, err := countRepo.GetByIDForUpdate(in.CountID)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if count.IsPosted() {
			return domain.ErrAlreadyPosted
		}

		now := time.Now()
		balances = make(map[string]decimal.Decimal, len(count.Lines))
		var lines []entity.MovementLine
		for _, line := range count.Lines {
			// Bloquea la fila de stock y relee el saldo actual dentro de la tx,
			// de modo que posteos concurrentes sobre la misma ubicación se serialicen.
			stock, err := stockRepo.GetForUpdate(line.ItemID, count.LocationID)
			if err != nil {
				return err
			}
			diff := line.CountedQty.Sub(stock.Quantity)
			balances[line.ItemID] = line.CountedQty
			if diff.IsZero() {
				continue
			}

			ml := entity.MovementLine{
				ID:       uuid.New().String(),
				ItemID:   line.ItemID,
				Quantity: diff.Abs(),
			}
			locID := count.LocationID
			if diff.IsPositive() {
				// sobrante: entrada hacia la ubicación del conteo
				ml.ToLocationID = &locID
			} else {
				// faltante: salida desde la ubicación del conteo
				ml.FromLocationID = &locID
			}
			lines = append(lines, ml)

			stock.Quantity = line.CountedQty // book + diff
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}

		if len(lines) > 0 {
			reference := in.MovementReference
			if reference == "" {
				reference = "ADJ-" + count.Reference
			}
			note := in.MovementNote
			if note == "" {
				note = fmt.Sprintf("Ajuste por conteo físico %s", count.Reference)
			}
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				Type:      entity.MovementTypeADJUST,
				Reference: reference,
				Note:      note,
				Posted:    true,
				Lines:     lines,
				CreatedAt: now,
				CreatedBy: in.UserID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			movement = mov
		}

		if err := countRepo.MarkPosted(count.ID, now, in.UserID); err != nil {
			return err
		}
		count.Status = entity.StockCountStatusPosted
		count.PostedAt = &now
		count.PostedBy = in.UserID
		posted = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := &dto.PostStockCountResponse{Count: *uc.toDetail(posted, balances, items)}
	if movement != nil {
		out.Movement = toMovementResponse(movement)
	}
	return out, nil
}

// bookQty saldo vivo de un item en una ubicación (fila ausente = cero).
func (uc *StockTakeUseCase) bookQty(itemID, locationID string) (decimal.Decimal, error) {
	stock, err := uc.stockRepo.Get(itemID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

func (uc *StockTakeUseCase) liveBalances(count *entity.StockCount) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal, len(count.Lines))
	for _, line := range count.Lines {
		book, err := uc.bookQty(line.ItemID, count.LocationID)
		if err != nil {
			return nil, err
		}
		balances[line.ItemID] = book
	}
	return balances, nil
}

func (uc *StockTakeUseCase) toDetail(count *entity.StockCount, balances map[string]decimal.Decimal, items []*entity.Item) *dto.StockCountDetailResponse {
	byID := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	lines := make([]dto.StockCountLineDetail, 0, len(count.Lines))
	for _, line := range count.Lines {
		lines = append(lines, toLineDetail(line, balances[line.ItemID], byID[line.ItemID]))
	}
	return &dto.StockCountDetailResponse{
		ID:         count.ID,
		Reference:  count.Reference,
		Status:     count.Status,
		LocationID: count.LocationID,
		Note:       count.Note,
		Lines:      lines,
		CreatedAt:  count.CreatedAt,
		CreatedBy:  count.CreatedBy,
		PostedAt:   count.PostedAt,
		PostedBy:   count.PostedBy,
	}
}

func toLineDetail(line entity.StockCountLine, book decimal.Decimal, item *entity.Item) dto.StockCountLineDetail {
	d := dto.StockCountLineDetail{
		ID:         line.ID,
		ItemID:     line.ItemID,
		CountedQty: line.CountedQty,
		BookQty:    book,
		Diff:       line.CountedQty.Sub(book),
	}
	if item != nil {
		d.SKU = item.SKU
		d.ItemName = item.Name
	}
	return d
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	lines := make([]dto.MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, dto.MovementLineResponse{
			ID:             l.ID,
			ItemID:         l.ItemID,
			FromLocationID: l.FromLocationID,
			ToLocationID:   l.ToLocationID,
			Quantity:       l.Quantity,
		})
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		Reference: m.Reference,
		Note:      m.Note,
		Posted:    m.Posted,
		Lines:     lines,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
