package response

import (
	"slotbook/internal/domain/catalog"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
)

type ServiceResponse struct {
	Message string               `json:"message,omitempty"`
	Service *queries.ServiceView `json:"service"`
}

type ServiceListResponse struct {
	Services []*queries.ServiceView `json:"services"`
	Count    int                    `json:"count"`
}

func NewServiceList(services []*queries.ServiceView) ServiceListResponse {
	if services == nil {
		services = []*queries.ServiceView{}
	}
	return ServiceListResponse{Services: services, Count: len(services)}
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ServiceStatsResponse struct {
	Stats *catalog.Stats `json:"stats"`
}

type BulkUpdateResponse struct {
	Message string                      `json:"message"`
	Results []commands.BulkUpdateResult `json:"results"`
}

type AvailabilityResponse struct {
	Availability *queries.AvailabilityView `json:"availability"`
}
