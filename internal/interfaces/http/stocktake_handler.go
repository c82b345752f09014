package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/stocktake"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockCountHandler maneja el ciclo de vida de los conteos físicos (protegido).
type StockCountHandler struct {
	uc *stocktake.StockTakeUseCase
}

// NewStockCountHandler construye el handler.
func NewStockCountHandler(uc *stocktake.StockTakeUseCase) *StockCountHandler {
	return &StockCountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conteo físico
// @Description  Abre un conteo en draft con una línea por item; los items con
// @Description  saldo cero se omiten salvo include_zero_balances=true.
// @Tags         stock-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockCountRequest  true  "Ubicación y referencia"
// @Success      201   {object}  dto.StockCountDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-counts [post]
func (h *StockCountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es requerido"})
	}
	out, err := h.uc.Create(c.Context(), stocktake.CreateInput{
		LocationID:          in.LocationID,
		Reference:           in.Reference,
		Note:                in.Note,
		IncludeZeroBalances: in.IncludeZeroBalances,
		UserID:              GetUserID(c),
	})
	if err != nil {
		return stockCountError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar conteos físicos
// @Tags         stock-counts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft o posted"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.StockCountListResponse
// @Router       /api/stock-counts [get]
func (h *StockCountHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != entity.StockCountStatusDraft && status != entity.StockCountStatusPosted {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser draft o posted"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetDetail godoc
// @Summary      Detalle de un conteo físico
// @Description  Cada línea incluye la cantidad en libros viva y diff = counted - book.
// @Tags         stock-counts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conteo"
// @Success      200  {object}  dto.StockCountDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-counts/{id} [get]
func (h *StockCountHandler) GetDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetDetail(c.Context(), id)
	if err != nil {
		return stockCountError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Fijar cantidad contada de una línea
// @Description  Solo mientras el conteo está en draft. La cantidad llega como
// @Description  texto y se parsea a decimal exacto; negativos se rechazan.
// @Tags         stock-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateCountLineRequest  true  "counted_qty"
// @Success      200     {object}  dto.StockCountLineDetail
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/stock-counts/lines/{lineId} [put]
func (h *StockCountHandler) UpdateLine(c *fiber.Ctx) error {
	lineID := c.Params("lineId")
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "lineId es requerido"})
	}
	var in dto.UpdateCountLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CountedQty == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "counted_qty es requerido"})
	}
	out, err := h.uc.UpdateLine(c.Context(), lineID, in.CountedQty)
	if err != nil {
		return stockCountError(c, err)
	}
	return c.JSON(out)
}

// Post godoc
// @Summary      Postear (reconciliar) un conteo físico
// @Description  Sella el conteo y genera un único movimiento ADJUST con una
// @Description  línea por diferencia no nula, todo en una transacción.
// @Tags         stock-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.PostStockCountRequest  false  "Referencia y nota del ajuste"
// @Success      200   {object}  dto.PostStockCountResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-counts/{id}/post [post]
func (h *StockCountHandler) Post(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.PostStockCountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Post(c.Context(), stocktake.PostInput{
		CountID:           id,
		MovementReference: in.MovementReference,
		MovementNote:      in.MovementNote,
		UserID:            GetUserID(c),
	})
	if err != nil {
		return stockCountError(c, err)
	}
	return c.JSON(out)
}

// stockCountError mapea errores de dominio del conteo a HTTP.
func stockCountError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conteo, línea o ubicación no existe"})
	case errors.Is(err, domain.ErrAlreadyPosted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_POSTED", Message: "el conteo ya fue posteado"})
	case errors.Is(err, domain.ErrDuplicateReference):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REFERENCE", Message: "la referencia ya existe"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "counted_qty debe ser un decimal no negativo"})
	case errors.Is(err, domain.ErrTransactionFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TX_FAILURE", Message: "la transacción no pudo confirmarse"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
