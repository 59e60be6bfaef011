package catalog

import (
	"strings"
	"time"

	"slotbook/internal/pkg/patch"

	"github.com/google/uuid"
)

// Service is an offering a business takes bookings for. Deleting a service only deactivates it.
type Service struct {
	id          uuid.UUID
	businessID  uuid.UUID
	name        string
	description string
	duration    int
	price       float64
	category    string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

type Fields struct {
	Name        string
	Description string
	Duration    int
	Price       float64
	Category    string
}

func NewService(businessID uuid.UUID, f Fields, now time.Time) (*Service, error) {
	f = f.normalized()
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &Service{
		id:          uuid.New(),
		businessID:  businessID,
		name:        f.Name,
		description: f.Description,
		duration:    f.Duration,
		price:       f.Price,
		category:    f.Category,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructService(
	id, businessID uuid.UUID,
	f Fields,
	active bool,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:          id,
		businessID:  businessID,
		name:        f.Name,
		description: f.Description,
		duration:    f.Duration,
		price:       f.Price,
		category:    f.Category,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Patch enumerates the mutable fields of a service.
type Patch struct {
	Name        *string
	Description *string
	Duration    *int
	Price       *float64
	Category    *string
	IsActive    *bool
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Duration == nil &&
		p.Price == nil && p.Category == nil && p.IsActive == nil
}

func (s *Service) Apply(p Patch, now time.Time) error {
	f := s.fields()
	f.Name = patch.Coalesce(p.Name, f.Name)
	f.Description = patch.Coalesce(p.Description, f.Description)
	f.Duration = patch.Coalesce(p.Duration, f.Duration)
	f.Price = patch.Coalesce(p.Price, f.Price)
	f.Category = patch.Coalesce(p.Category, f.Category)
	f = f.normalized()
	if err := f.validate(); err != nil {
		return err
	}

	s.name = f.Name
	s.description = f.Description
	s.duration = f.Duration
	s.price = f.Price
	s.category = f.Category
	s.active = patch.Coalesce(p.IsActive, s.active)
	s.updatedAt = now
	return nil
}

func (s *Service) Deactivate(now time.Time) {
	s.active = false
	s.updatedAt = now
}

func (s *Service) BelongsTo(businessID uuid.UUID) bool {
	return s.businessID == businessID
}

// Matches is the case-insensitive search predicate over name, description and category.
func (s *Service) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.name), term) ||
		strings.Contains(strings.ToLower(s.description), term) ||
		strings.Contains(strings.ToLower(s.category), term)
}

func (s *Service) fields() Fields {
	return Fields{
		Name:        s.name,
		Description: s.description,
		Duration:    s.duration,
		Price:       s.price,
		Category:    s.category,
	}
}

func (s *Service) ID() uuid.UUID         { return s.id }
func (s *Service) BusinessID() uuid.UUID { return s.businessID }
func (s *Service) Name() string          { return s.name }
func (s *Service) Description() string   { return s.description }
func (s *Service) Duration() int         { return s.duration }
func (s *Service) Price() float64        { return s.price }
func (s *Service) Category() string      { return s.category }
func (s *Service) IsActive() bool        { return s.active }
func (s *Service) CreatedAt() time.Time  { return s.createdAt }
func (s *Service) UpdatedAt() time.Time  { return s.updatedAt }
