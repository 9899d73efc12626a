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

// EmployeeStore é implementado por repository.EmployeeRepository (SQL) e MongoEmployeeRepository.
type EmployeeStore interface {
	List(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Employee, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeService struct {
	store EmployeeStore
	now   func() time.Time
	loc   *time.Location
}

func NewEmployeeService(store EmployeeStore) *EmployeeService {
	return &EmployeeService{store: store, now: time.Now, loc: time.UTC}
}

// SetLocation define o fuso do "hoje" usado na data de nascimento.
func (s *EmployeeService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

func (s *EmployeeService) today() time.Time {
	return s.now().In(s.loc)
}

// SetClock troca a fonte de horário (testes).
func (s *EmployeeService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.store.List(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	e, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("employee", "id", id)
	}
	return e, err
}

func (s *EmployeeService) GetByCPF(ctx context.Context, cpf string) (*models.Employee, error) {
	e, err := s.store.GetByCPF(ctx, cpf)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("employee", "cpf", cpf)
	}
	return e, err
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if err := in.Validate(s.today()); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByCPF(ctx, in.CPF)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, cpfConflict(in.CPF)
	}

	ts := stamp(s.now, time.Time{})
	e := newEmployee(in)
	e.CreatedAt = ts
	e.UpdatedAt = ts

	// o índice único fecha a corrida entre o ExistsByCPF e o insert
	if err := s.store.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicateCPF) {
			return nil, cpfConflict(in.CPF)
		}
		return nil, err
	}

	slog.Debug("employee_created", "id", e.ID)
	return e, nil
}

// Update sobrescreve todos os campos mutáveis; id e createdAt são preservados.
func (s *EmployeeService) Update(ctx context.Context, id int64, in EmployeeInput) (*models.Employee, error) {
	if err := in.Validate(s.today()); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CPF != current.CPF {
		other, err := s.store.GetByCPF(ctx, in.CPF)
		switch {
		case err == nil && other.ID != id:
			return nil, cpfConflict(in.CPF)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	e := newEmployee(in)
	e.ID = current.ID
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = stamp(s.now, current.UpdatedAt)

	if err := s.store.Update(ctx, e); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateCPF):
			return nil, cpfConflict(in.CPF)
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("employee", "id", id)
		}
		return nil, err
	}

	slog.Debug("employee_updated", "id", e.ID)
	return e, nil
}

// Delete remove o funcionário e, com ele, os contatos.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("employee", "id", id)
		}
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	slog.Debug("employee_deleted", "id", id)
	return nil
}

// Exists atende o ContactService.
func (s *EmployeeService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.store.Exists(ctx, id)
}

func newEmployee(in EmployeeInput) *models.Employee {
	return &models.Employee{
		CPF:         in.CPF,
		Name:        in.Name,
		SocialName:  in.SocialName,
		BirthDate:   in.BirthDate,
		RaceColor:   in.RaceColor,
		Sex:         in.Sex,
		Nationality: in.Nationality,
		BirthState:  in.BirthState,
		BirthCity:   in.BirthCity,
		Phone:       in.Phone,
	}
}
