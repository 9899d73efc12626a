package handlers

import (
	"context"
	"errors"

	"github.com/rabbitmq/amqp091-go"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/service"
)

type employeeSvcMock struct {
	ListFn     func(ctx context.Context) ([]models.Employee, error)
	GetByIDFn  func(ctx context.Context, id int64) (*models.Employee, error)
	GetByCPFFn func(ctx context.Context, cpf string) (*models.Employee, error)
	CreateFn   func(ctx context.Context, in service.EmployeeInput) (*models.Employee, error)
	UpdateFn   func(ctx context.Context, id int64, in service.EmployeeInput) (*models.Employee, error)
	DeleteFn   func(ctx context.Context, id int64) error
}

func (m *employeeSvcMock) List(ctx context.Context) ([]models.Employee, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx)
}
func (m *employeeSvcMock) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *employeeSvcMock) GetByCPF(ctx context.Context, cpf string) (*models.Employee, error) {
	if m.GetByCPFFn == nil {
		return nil, errors.New("GetByCPFFn not set")
	}
	return m.GetByCPFFn(ctx, cpf)
}
func (m *employeeSvcMock) Create(ctx context.Context, in service.EmployeeInput) (*models.Employee, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, in)
}
func (m *employeeSvcMock) Update(ctx context.Context, id int64, in service.EmployeeInput) (*models.Employee, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, in)
}
func (m *employeeSvcMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type contactSvcMock struct {
	ListByEmployeeFn func(ctx context.Context, employeeID int64) ([]models.Contact, error)
	GetByIDFn        func(ctx context.Context, id int64) (*models.Contact, error)
	CreateFn         func(ctx context.Context, in service.ContactInput) (*models.Contact, error)
	UpdateFn         func(ctx context.Context, id int64, in service.ContactInput) (*models.Contact, error)
	DeleteFn         func(ctx context.Context, id int64) error
}

func (m *contactSvcMock) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Contact, error) {
	if m.ListByEmployeeFn == nil {
		return nil, errors.New("ListByEmployeeFn not set")
	}
	return m.ListByEmployeeFn(ctx, employeeID)
}
func (m *contactSvcMock) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *contactSvcMock) Create(ctx context.Context, in service.ContactInput) (*models.Contact, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, in)
}
func (m *contactSvcMock) Update(ctx context.Context, id int64, in service.ContactInput) (*models.Contact, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, in)
}
func (m *contactSvcMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body string, headers amqp091.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body string, headers amqp091.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
