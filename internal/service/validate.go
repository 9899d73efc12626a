package service

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/utils"
)

func init() {
	govalidator.TagMap["cpf"] = govalidator.Validator(utils.IsCPFFormatted)
	govalidator.TagMap["phone"] = govalidator.Validator(utils.IsPhoneFormatted)
}

// EmployeeInput são os campos mutáveis de um funcionário.
// BirthDate é conferida à parte (govalidator não sabe o que é "no passado").
type EmployeeInput struct {
	CPF         string    `json:"cpf" valid:"required~cpf is required,cpf~cpf must match 000.000.000-00"`
	Name        string    `json:"name" valid:"required~name is required,runelength(3|200)~name must have between 3 and 200 characters"`
	SocialName  string    `json:"socialName" valid:"runelength(0|200)~socialName must have at most 200 characters"`
	BirthDate   time.Time `json:"birthDate" valid:"-"`
	RaceColor   string    `json:"raceColor" valid:"required~raceColor is required,runelength(1|20)~raceColor must have at most 20 characters"`
	Sex         string    `json:"sex" valid:"required~sex is required,in(masculino|feminino)~sex must be masculino or feminino"`
	Nationality string    `json:"nationality" valid:"required~nationality is required,runelength(1|50)~nationality must have at most 50 characters"`
	BirthState  string    `json:"birthState" valid:"required~birthState is required,runelength(2|2)~birthState must have exactly 2 characters"`
	BirthCity   string    `json:"birthCity" valid:"required~birthCity is required,runelength(1|100)~birthCity must have at most 100 characters"`
	Phone       string    `json:"phone" valid:"required~phone is required,phone~phone must match (00) 00000-0000"`
}

// ContactInput: EmployeeID só vale na criação.
type ContactInput struct {
	EmployeeID  int64  `json:"employeeId" valid:"-"`
	Type        string `json:"type" valid:"required~type is required,in(email|celular|telefone)~type must be email or celular or telefone"`
	Value       string `json:"value" valid:"required~value is required,runelength(1|100)~value must have at most 100 characters"`
	Description string `json:"description" valid:"runelength(0|200)~description must have at most 200 characters"`
	IsPrimary   bool   `json:"isPrimary"`
}

var sexAliases = map[string]string{
	"masculine": models.SexMasculine,
	"feminine":  models.SexFeminine,
}

var contactTypeAliases = map[string]string{
	"mobile":   models.ContactMobile,
	"landline": models.ContactLandline,
}

func canonical(v string, aliases map[string]string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if c, ok := aliases[v]; ok {
		return c
	}
	return v
}

// Normalize troca os apelidos em inglês pelos códigos gravados e zera a hora da data de nascimento.
func (in *EmployeeInput) Normalize() {
	in.CPF = strings.TrimSpace(in.CPF)
	in.Name = strings.TrimSpace(in.Name)
	in.SocialName = strings.TrimSpace(in.SocialName)
	in.RaceColor = strings.TrimSpace(in.RaceColor)
	in.Sex = canonical(in.Sex, sexAliases)
	in.Nationality = strings.TrimSpace(in.Nationality)
	in.BirthState = strings.TrimSpace(in.BirthState)
	in.BirthCity = strings.TrimSpace(in.BirthCity)
	in.Phone = strings.TrimSpace(in.Phone)
	if !in.BirthDate.IsZero() {
		y, m, d := in.BirthDate.Date()
		in.BirthDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

// Validate normaliza e confere todas as regras de campo. now define o "hoje" da data de nascimento,
// no fuso de now (o chamador escolhe a Location).
func (in *EmployeeInput) Validate(now time.Time) error {
	in.Normalize()

	fields := structErrors(in)
	if in.BirthDate.IsZero() {
		fields["birthDate"] = "birthDate is required"
	} else {
		y, m, d := now.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if !in.BirthDate.Before(today) {
			fields["birthDate"] = "birthDate must be in the past"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (in *ContactInput) Normalize() {
	in.Type = canonical(in.Type, contactTypeAliases)
	in.Value = strings.TrimSpace(in.Value)
	in.Description = strings.TrimSpace(in.Description)
}

// Validate confere os campos do contato; withEmployee exige employeeId (criação).
func (in *ContactInput) Validate(withEmployee bool) error {
	in.Normalize()

	fields := structErrors(in)
	if withEmployee && in.EmployeeID <= 0 {
		fields["employeeId"] = "employeeId is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func structErrors(v any) map[string]string {
	fields := map[string]string{}
	if _, err := govalidator.ValidateStruct(v); err != nil {
		for k, msg := range govalidator.ErrorsByField(err) {
			fields[k] = msg
		}
	}
	return fields
}
