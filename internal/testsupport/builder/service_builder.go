//go:build unit || e2e

package builder

import (
	"time"

	"slotbook/internal/domain/catalog"
	reqdto "slotbook/internal/handler/dto/request"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceBuilder struct {
	BusinessID  uuid.UUID
	Name        string
	Description string
	Duration    int
	Price       float64
	Category    string
}

func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{
		BusinessID:  uuid.New(),
		Name:        "Haircut",
		Description: "Wash, cut and style",
		Duration:    60,
		Price:       45,
		Category:    "Hair",
	}
}

func (s *ServiceBuilder) With(mutate func(*ServiceBuilder)) *ServiceBuilder {
	mutate(s)
	return s
}

func (s *ServiceBuilder) Fields() catalog.Fields {
	return catalog.Fields{
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
	}
}

// Build methods
func (s *ServiceBuilder) BuildDomain(now time.Time) (*catalog.Service, error) {
	return catalog.NewService(s.BusinessID, s.Fields(), now)
}

func (s *ServiceBuilder) BuildView() *queries.ServiceView {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &queries.ServiceView{
		ID:          uuid.New(),
		BusinessID:  s.BusinessID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *ServiceBuilder) BuildCreateDTO() reqdto.CreateServiceRequest {
	return reqdto.CreateServiceRequest{
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Price:       s.Price,
		Category:    s.Category,
	}
}

// Fluent builder methods
func (s *ServiceBuilder) WithBusinessID(id uuid.UUID) *ServiceBuilder {
	s.BusinessID = id
	return s
}

func (s *ServiceBuilder) WithName(name string) *ServiceBuilder {
	s.Name = name
	return s
}

func (s *ServiceBuilder) WithDuration(minutes int) *ServiceBuilder {
	s.Duration = minutes
	return s
}

func (s *ServiceBuilder) WithPrice(price float64) *ServiceBuilder {
	s.Price = price
	return s
}

func (s *ServiceBuilder) WithCategory(category string) *ServiceBuilder {
	s.Category = category
	return s
}
