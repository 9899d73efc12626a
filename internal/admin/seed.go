package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/service"
)

//go:embed seeds/employees.json
var employeesJSON []byte

type seedContact struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description"`
	IsPrimary   bool   `json:"isPrimary"`
}

type seedItem struct {
	CPF         string        `json:"cpf"`
	Name        string        `json:"name"`
	SocialName  string        `json:"socialName"`
	BirthDate   string        `json:"birthDate"`
	RaceColor   string        `json:"raceColor"`
	Sex         string        `json:"sex"`
	Nationality string        `json:"nationality"`
	BirthState  string        `json:"birthState"`
	BirthCity   string        `json:"birthCity"`
	Phone       string        `json:"phone"`
	Contacts    []seedContact `json:"contacts"`
}

type EmployeeCreator interface {
	Create(ctx context.Context, in service.EmployeeInput) (*models.Employee, error)
}

type ContactCreator interface {
	Create(ctx context.Context, in service.ContactInput) (*models.Contact, error)
}

// SeedEmployees é idempotente: cria se o CPF não existir; se já existir, ignora (e não mexe nos contatos).
func SeedEmployees(ctx context.Context, employees EmployeeCreator, contacts ContactCreator, log *slog.Logger) error {
	return seed(ctx, employeesJSON, employees, contacts, log)
}

func seed(ctx context.Context, raw []byte, employees EmployeeCreator, contacts ContactCreator, log *slog.Logger) error {
	var items []seedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("seed file: %w", err)
	}

	created := 0
	for _, s := range items {
		bd, err := time.Parse("2006-01-02", s.BirthDate)
		if err != nil {
			log.Warn("seed_skip_invalid_birth_date", "cpf", s.CPF, "raw", s.BirthDate)
			continue
		}
		in := service.EmployeeInput{
			CPF:         s.CPF,
			Name:        s.Name,
			SocialName:  s.SocialName,
			BirthDate:   bd,
			RaceColor:   s.RaceColor,
			Sex:         s.Sex,
			Nationality: s.Nationality,
			BirthState:  s.BirthState,
			BirthCity:   s.BirthCity,
			Phone:       s.Phone,
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		e, err := employees.Create(ictx, in)
		cancel()

		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrConflict):
			log.Info("seed_employee_exists", "cpf", s.CPF)
			continue
		case errors.As(err, &verr):
			log.Warn("seed_skip_invalid_employee", "cpf", s.CPF, "fields", verr.Fields)
			continue
		case err != nil:
			return err
		}
		created++
		log.Info("seed_employee_created", "id", e.ID, "cpf", e.CPF)

		for _, c := range s.Contacts {
			cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			_, err := contacts.Create(cctx, service.ContactInput{
				EmployeeID:  e.ID,
				Type:        c.Type,
				Value:       c.Value,
				Description: c.Description,
				IsPrimary:   c.IsPrimary,
			})
			cancel()
			if errors.As(err, &verr) {
				log.Warn("seed_skip_invalid_contact", "cpf", e.CPF, "type", c.Type, "fields", verr.Fields)
				continue
			}
			if err != nil {
				return fmt.Errorf("seed contact of %s: %w", e.CPF, err)
			}
		}
	}

	log.Info("seed_employees_done", "count", len(items), "created", created)
	return nil
}
