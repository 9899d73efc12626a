package handlers

import (
	"time"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/service"
)

const dateLayout = "2006-01-02"

// corpo de POST/PUT /api/employees
type EmployeeRequest struct {
	CPF         string `json:"cpf"`
	Name        string `json:"name"`
	SocialName  string `json:"socialName"`
	BirthDate   string `json:"birthDate"` // YYYY-MM-DD
	RaceColor   string `json:"raceColor"`
	Sex         string `json:"sex"`
	Nationality string `json:"nationality"`
	BirthState  string `json:"birthState"`
	BirthCity   string `json:"birthCity"`
	Phone       string `json:"phone"`
}

type EmployeeResponse struct {
	ID          int64     `json:"id"`
	CPF         string    `json:"cpf"`
	Name        string    `json:"name"`
	SocialName  string    `json:"socialName,omitempty"`
	BirthDate   string    `json:"birthDate"`
	RaceColor   string    `json:"raceColor"`
	Sex         string    `json:"sex"`
	Nationality string    `json:"nationality"`
	BirthState  string    `json:"birthState"`
	BirthCity   string    `json:"birthCity"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// employeeId é ignorado no PUT
type ContactRequest struct {
	EmployeeID  int64  `json:"employeeId"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description"`
	IsPrimary   bool   `json:"isPrimary"`
}

type ContactResponse struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeId"`
	Type        string    `json:"type"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	IsPrimary   bool      `json:"isPrimary"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// toInput converte o corpo; a data vazia fica zero e é barrada pela validação.
func (d EmployeeRequest) toInput() (service.EmployeeInput, error) {
	in := service.EmployeeInput{
		CPF:         d.CPF,
		Name:        d.Name,
		SocialName:  d.SocialName,
		RaceColor:   d.RaceColor,
		Sex:         d.Sex,
		Nationality: d.Nationality,
		BirthState:  d.BirthState,
		BirthCity:   d.BirthCity,
		Phone:       d.Phone,
	}
	if d.BirthDate != "" {
		bd, err := time.Parse(dateLayout, d.BirthDate)
		if err != nil {
			return in, &service.ValidationError{Fields: map[string]string{
				"birthDate": "birthDate must be a date in YYYY-MM-DD format",
			}}
		}
		in.BirthDate = bd
	}
	return in, nil
}

func (d ContactRequest) toInput() service.ContactInput {
	return service.ContactInput{
		EmployeeID:  d.EmployeeID,
		Type:        d.Type,
		Value:       d.Value,
		Description: d.Description,
		IsPrimary:   d.IsPrimary,
	}
}

func toEmployeeResponse(e *models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		CPF:         e.CPF,
		Name:        e.Name,
		SocialName:  e.SocialName,
		BirthDate:   e.BirthDate.UTC().Format(dateLayout),
		RaceColor:   e.RaceColor,
		Sex:         e.Sex,
		Nationality: e.Nationality,
		BirthState:  e.BirthState,
		BirthCity:   e.BirthCity,
		Phone:       e.Phone,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func toEmployeeResponses(list []models.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for i := range list {
		out = append(out, toEmployeeResponse(&list[i]))
	}
	return out
}

func toContactResponse(c *models.Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		EmployeeID:  c.EmployeeID,
		Type:        c.Type,
		Value:       c.Value,
		Description: c.Description,
		IsPrimary:   c.IsPrimary,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

func toContactResponses(list []models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(list))
	for i := range list {
		out = append(out, toContactResponse(&list[i]))
	}
	return out
}
