package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/repository"
)

type ContactStore interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	Update(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeChecker responde se um funcionário existe.
type EmployeeChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ContactService struct {
	store     ContactStore
	employees EmployeeChecker
	now       func() time.Time
}

func NewContactService(store ContactStore, employees EmployeeChecker) *ContactService {
	return &ContactService{store: store, employees: employees, now: time.Now}
}

func (s *ContactService) SetClock(now func() time.Time) {
	s.now = now
}

// ListByEmployee não confere se o funcionário existe: id desconhecido devolve lista vazia.
func (s *ContactService) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Contact, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *ContactService) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("contact", "id", id)
	}
	return c, err
}

func (s *ContactService) Create(ctx context.Context, in ContactInput) (*models.Contact, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}

	ok, err := s.employees.Exists(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("employee", "id", in.EmployeeID)
	}

	ts := stamp(s.now, time.Time{})
	c := &models.Contact{
		EmployeeID:  in.EmployeeID,
		Type:        in.Type,
		Value:       in.Value,
		Description: in.Description,
		IsPrimary:   in.IsPrimary,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.store.Create(ctx, c); err != nil {
		// funcionário removido entre a checagem e o insert
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, notFound("employee", "id", in.EmployeeID)
		}
		return nil, err
	}

	slog.Debug("contact_created", "id", c.ID, "employee_id", c.EmployeeID)
	return c, nil
}

// Update troca type, value, description e isPrimary. in.EmployeeID é ignorado.
func (s *ContactService) Update(ctx context.Context, id int64, in ContactInput) (*models.Contact, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Type = in.Type
	c.Value = in.Value
	c.Description = in.Description
	c.IsPrimary = in.IsPrimary
	c.UpdatedAt = stamp(s.now, c.UpdatedAt)

	if err := s.store.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("contact", "id", id)
		}
		return nil, err
	}

	slog.Debug("contact_updated", "id", c.ID)
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("contact", "id", id)
		}
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	slog.Debug("contact_deleted", "id", id)
	return nil
}
