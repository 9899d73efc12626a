package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccm/recadastramento/internal/models"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Contact, error) {
	list := []models.Contact{}
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Order("id").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list contacts of employee %d: %w", employeeID, err)
	}
	return list, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	var c models.Contact
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact %d: %w", id, err)
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// Update troca só tipo, valor, descrição e principal. employee_id não é tocado.
func (r *ContactRepository) Update(ctx context.Context, c *models.Contact) error {
	res := r.db.WithContext(ctx).
		Model(&models.Contact{ID: c.ID}).
		Select("type", "value", "description", "is_primary", "updated_at").
		Updates(c)
	if res.Error != nil {
		return fmt.Errorf("update contact %d: %w", c.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete contact %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
