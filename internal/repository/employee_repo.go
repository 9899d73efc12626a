package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccm/recadastramento/internal/models"
	"gorm.io/gorm"
)

// EmployeeRepository guarda funcionários numa base relacional (PostgreSQL ou SQLite).
// A unicidade do CPF é garantida pelo índice uniq_employees_cpf.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	list := []models.Employee{}
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	var e models.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByCPF(ctx context.Context, cpf string) (*models.Employee, error) {
	var e models.Employee
	err := r.db.WithContext(ctx).First(&e, "cpf = ?", cpf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get employee by cpf: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("cpf = ?", cpf).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count employees by cpf: %w", err)
	}
	return n > 0, nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count employees by id: %w", err)
	}
	return n > 0, nil
}

// Create insere e preenche e.ID.
func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCPF
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Update grava todos os campos mutáveis; id e created_at ficam como estão no banco.
func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	res := r.db.WithContext(ctx).
		Model(&models.Employee{ID: e.ID}).
		Select("cpf", "name", "social_name", "birth_date", "race_color", "sex",
			"nationality", "birth_state", "birth_city", "phone", "updated_at").
		Updates(e)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCPF
		}
		return fmt.Errorf("update employee %d: %w", e.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete remove o funcionário; os contatos saem junto (ON DELETE CASCADE).
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete employee %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
