package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
)

// Audit compara el saldo materializado (tabla stock) contra el saldo derivado
// de sumar las líneas del kardex por (item, ubicación). La tabla stock es una
// caché desnormalizada mantenida en la misma transacción que cada movimiento,
// así que cualquier discrepancia indica corrupción y debe investigarse.
// Solo lectura; no corrige nada.
func (uc *LedgerUseCase) Audit(ctx context.Context) (*dto.StockAuditResponse, error) {
	derived, err := uc.movRepo.DerivedBalances()
	if err != nil {
		return nil, err
	}
	materialized, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}

	type key struct{ item, location string }
	book := make(map[key]decimal.Decimal, len(materialized))
	for _, s := range materialized {
		book[key{s.ItemID, s.LocationID}] = s.Quantity
	}

	out := &dto.StockAuditResponse{Consistent: true, Mismatches: []dto.StockAuditMismatch{}}
	seen := make(map[key]bool, len(derived))
	for _, d := range derived {
		k := key{d.ItemID, d.LocationID}
		seen[k] = true
		if !book[k].Equal(d.Quantity) { // clave ausente = cero, consistente con el contrato del store
			out.Mismatches = append(out.Mismatches, dto.StockAuditMismatch{
				ItemID:     d.ItemID,
				LocationID: d.LocationID,
				BookQty:    book[k],
				DerivedQty: d.Quantity,
			})
		}
	}
	// Filas materializadas sin líneas que las respalden.
	for _, s := range materialized {
		k := key{s.ItemID, s.LocationID}
		if !seen[k] && !s.Quantity.IsZero() {
			out.Mismatches = append(out.Mismatches, dto.StockAuditMismatch{
				ItemID:     s.ItemID,
				LocationID: s.LocationID,
				BookQty:    s.Quantity,
				DerivedQty: decimal.Zero,
			})
		}
	}
	out.Consistent = len(out.Mismatches) == 0
	return out, nil
}
