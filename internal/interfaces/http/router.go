package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/stocktake"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	LocationUC  *usecase.LocationUseCase
	LedgerUC    *ledger.LedgerUseCase
	StockTakeUC *stocktake.StockTakeUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Las rutas de escritura exigen rol
// admin o bodeguero; consulta solo puede leer.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Items (catálogo)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", canWrite, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", canWrite, itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Locations (ubicaciones físicas)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", canWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", canWrite, locationHandler.Update)
	locations.Delete("/:id", RequireRole(entity.RoleAdmin), locationHandler.Delete)

	// Kardex (movimientos, saldos y auditoría)
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements := protected.Group("/movements")
	movements.Post("/", canWrite, movementHandler.Append)
	movements.Get("/:id", movementHandler.GetByID)
	locations.Get("/:id/movements", movementHandler.ListByLocation)
	locations.Get("/:id/stock", movementHandler.Balances)
	items.Get("/:id/movements", movementHandler.ListByItem)
	protected.Get("/stock/audit", movementHandler.Audit)

	// Conteos físicos (stock counts)
	counts := protected.Group("/stock-counts")
	countHandler := NewStockCountHandler(deps.StockTakeUC)
	counts.Post("/", canWrite, countHandler.Create)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetDetail)
	counts.Put("/lines/:lineId", canWrite, countHandler.UpdateLine)
	counts.Post("/:id/post", canWrite, countHandler.Post)
}
