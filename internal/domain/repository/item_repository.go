package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	Update(item *entity.Item) error
	List(limit, offset int) ([]*entity.Item, error)
	// ListAll devuelve el catálogo completo ordenado por SKU (snapshot de conteos).
	ListAll() ([]*entity.Item, error)
	Delete(id string) error
}
