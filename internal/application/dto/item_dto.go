package dto

import "time"

// CreateItemRequest entrada para crear un item del catálogo.
type CreateItemRequest struct {
	SKU         string `json:"sku" validate:"required,min=1,max=100"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure string `json:"unit_measure"`
}

// UpdateItemRequest entrada para actualizar un item.
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	UnitMeasure *string `json:"unit_measure"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	UnitMeasure string    `json:"unit_measure"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemListResponse lista paginada de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
