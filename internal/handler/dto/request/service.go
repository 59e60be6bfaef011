package request

import (
	"slotbook/internal/domain/catalog"
	"slotbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// ToFields leaves range checks to the catalog so the messages stay in one place.
func (r CreateServiceRequest) ToFields() catalog.Fields {
	return catalog.Fields{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Price:       r.Price,
		Category:    r.Category,
	}
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"is_active"`
}

func (r UpdateServiceRequest) ToPatch() catalog.Patch {
	return catalog.Patch{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Price:       r.Price,
		Category:    r.Category,
		IsActive:    r.IsActive,
	}
}

type BulkUpdateEntry struct {
	ID      uuid.UUID            `json:"id" binding:"required"`
	Updates UpdateServiceRequest `json:"updates"`
}

type BulkUpdateRequest struct {
	Services []BulkUpdateEntry `json:"services" binding:"required,min=1,dive"`
}

func (r BulkUpdateRequest) ToItems() []commands.BulkUpdateItem {
	items := make([]commands.BulkUpdateItem, 0, len(r.Services))
	for _, s := range r.Services {
		items = append(items, commands.BulkUpdateItem{ID: s.ID, Patch: s.Updates.ToPatch()})
	}
	return items
}
