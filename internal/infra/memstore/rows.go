package memstore

import (
	"time"

	"slotbook/internal/domain/catalog"
	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"
	"slotbook/internal/infra"

	"github.com/google/uuid"
)

type userRow struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Profile      user.Profile
	Role         string
	Active       bool
	Settings     user.Settings
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toUserRow(a *user.Account) userRow {
	return userRow{
		ID:           a.ID(),
		Email:        a.Email().Value(),
		PasswordHash: a.PasswordHash(),
		Profile:      a.Profile(),
		Role:         a.Role().String(),
		Active:       a.IsActive(),
		Settings:     a.Settings(),
		LastLoginAt:  a.LastLoginAt(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

func (r userRow) toDomain() (*user.Account, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	role, err := user.NewRole(r.Role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}
	return user.ReconstructAccount(
		r.ID, email, r.PasswordHash, r.Profile, role, r.Active, r.Settings,
		r.LastLoginAt, r.CreatedAt, r.UpdatedAt,
	), nil
}

type serviceRow struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Fields     catalog.Fields
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toServiceRow(s *catalog.Service) serviceRow {
	return serviceRow{
		ID:         s.ID(),
		BusinessID: s.BusinessID(),
		Fields: catalog.Fields{
			Name:        s.Name(),
			Description: s.Description(),
			Duration:    s.Duration(),
			Price:       s.Price(),
			Category:    s.Category(),
		},
		Active:    s.IsActive(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func (r serviceRow) toDomain() *catalog.Service {
	return catalog.ReconstructService(r.ID, r.BusinessID, r.Fields, r.Active, r.CreatedAt, r.UpdatedAt)
}

type jobRow struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Topic      string
	Recipient  string
	Payload    notification.Payload
	Status     string
	Attempts   int
	RunAt      time.Time
	LastError  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toJobRow(j *notification.Job) jobRow {
	return jobRow{
		ID:         j.ID(),
		BusinessID: j.BusinessID(),
		Topic:      string(j.Topic()),
		Recipient:  j.Recipient(),
		Payload:    j.Payload(),
		Status:     string(j.Status()),
		Attempts:   j.Attempts(),
		RunAt:      j.RunAt(),
		LastError:  j.LastError(),
		CreatedAt:  j.CreatedAt(),
		UpdatedAt:  j.UpdatedAt(),
	}
}

func (r jobRow) toDomain() *notification.Job {
	return notification.ReconstructJob(
		r.ID, r.BusinessID, notification.Topic(r.Topic), r.Recipient, r.Payload,
		notification.Status(r.Status), r.Attempts, r.RunAt, r.LastError, r.CreatedAt, r.UpdatedAt,
	)
}
