package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos del kardex (entradas, salidas, traslados)
// y expone la lectura de historial y saldos para reporting. El kardex es
// append-only: un movimiento nunca se muta ni se elimina después de creado.
type LedgerUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	movRepo      repository.MovementRepository
	stockRepo    repository.StockRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		movRepo:      movRepo,
		stockRepo:    stockRepo,
	}
}

// LineInput una línea a registrar. Dirección por from/to:
// ambos = traslado, solo To = entrada, solo From = salida.
type LineInput struct {
	ItemID         string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
}

// AppendInput entrada para registrar un movimiento del kardex.
type AppendInput struct {
	Type      string // IN, OUT, TRANSFER, ADJUST
	Reference string
	Note      string
	UserID    string
	Lines     []LineInput
}

// AppendMovement crea un movimiento (cabecera + líneas) y actualiza los saldos
// en la misma transacción, con bloqueo de fila por (item, ubicación). La
// referencia es única global: una colisión la rechaza el constraint del store
// y se devuelve ErrDuplicateReference.
func (uc *LedgerUseCase) AppendMovement(ctx context.Context, in AppendInput) (*dto.MovementResponse, error) {
	if in.Reference == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateLines(in); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Reference: in.Reference,
		Note:      in.Note,
		Posted:    true,
		CreatedAt: now,
		CreatedBy: in.UserID,
	}
	for _, l := range in.Lines {
		ml := entity.MovementLine{
			ID:         uuid.New().String(),
			MovementID: mov.ID,
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
		}
		if l.FromLocationID != "" {
			from := l.FromLocationID
			ml.FromLocationID = &from
		}
		if l.ToLocationID != "" {
			to := l.ToLocationID
			ml.ToLocationID = &to
		}
		mov.Lines = append(mov.Lines, ml)
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		for _, ml := range mov.Lines {
			if ml.FromLocationID != nil {
				if err := applyDelta(stockRepo, ml.ItemID, *ml.FromLocationID, ml.Quantity.Neg(), in.Type, now); err != nil {
					return err
				}
			}
			if ml.ToLocationID != nil {
				if err := applyDelta(stockRepo, ml.ItemID, *ml.ToLocationID, ml.Quantity, in.Type, now); err != nil {
					return err
				}
			}
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// applyDelta bloquea la fila de stock, aplica el delta y guarda. Para salidas
// físicas (OUT, TRANSFER) exige saldo suficiente; los ajustes no, porque un
// saldo negativo es representable (merma real antes de reconciliar).
func applyDelta(stockRepo repository.StockRepository, itemID, locationID string, delta decimal.Decimal, movType string, now time.Time) error {
	stock, err := stockRepo.GetForUpdate(itemID, locationID)
	if err != nil {
		return err
	}
	newQty := stock.Quantity.Add(delta)
	if newQty.IsNegative() && (movType == entity.MovementTypeOUT || movType == entity.MovementTypeTRANSFER) {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = now
	return stockRepo.Upsert(stock)
}

// validateLines valida tipo, cantidades y coherencia dirección/tipo, y que
// items y ubicaciones existan.
func (uc *LedgerUseCase) validateLines(in AppendInput) error {
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
		hasFrom := l.FromLocationID != ""
		hasTo := l.ToLocationID != ""
		switch in.Type {
		case entity.MovementTypeIN:
			if hasFrom || !hasTo {
				return domain.ErrInvalidInput
			}
		case entity.MovementTypeOUT:
			if !hasFrom || hasTo {
				return domain.ErrInvalidInput
			}
		case entity.MovementTypeTRANSFER:
			if !hasFrom || !hasTo || l.FromLocationID == l.ToLocationID {
				return domain.ErrInvalidInput
			}
		case entity.MovementTypeADJUST:
			if hasFrom == hasTo { // exactamente un lado
				return domain.ErrInvalidInput
			}
		default:
			return domain.ErrInvalidInput
		}

		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		for _, locID := range []string{l.FromLocationID, l.ToLocationID} {
			if locID == "" {
				continue
			}
			loc, err := uc.locationRepo.GetByID(locID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.ErrNotFound
			}
		}
	}
	return nil
}

// GetMovement obtiene un movimiento con sus líneas.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

// ListByLocation historial del kardex de una ubicación (rango de fechas opcional).
func (uc *LedgerUseCase) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	movs, err := uc.movRepo.ListByLocation(locationID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(movs, limit, offset), nil
}

// ListByItem historial del kardex de un item (rango de fechas opcional).
func (uc *LedgerUseCase) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	movs, err := uc.movRepo.ListByItem(itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(movs, limit, offset), nil
}

// Balances saldos actuales de una ubicación (lectura para reporting).
func (uc *LedgerUseCase) Balances(ctx context.Context, locationID string) ([]dto.StockBalanceResponse, error) {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	stocks, err := uc.stockRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockBalanceResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.StockBalanceResponse{
			ItemID:     s.ItemID,
			LocationID: s.LocationID,
			Quantity:   s.Quantity,
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return out, nil
}

func toMovementList(movs []*entity.Movement, limit, offset int) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
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
