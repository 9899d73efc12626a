package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccm/recadastramento/internal/db"
	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/repository"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newServices(t *testing.T) (*EmployeeService, *ContactService) {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseSQL(gdb) })
	_, err = db.Migrate(gdb, db.DialectSQLite)
	require.NoError(t, err)

	employees := NewEmployeeService(repository.NewEmployeeRepository(gdb))
	employees.SetClock(func() time.Time { return fixedNow })
	contacts := NewContactService(repository.NewContactRepository(gdb), employees)
	contacts.SetClock(func() time.Time { return fixedNow })
	return employees, contacts
}

func anaSilva() EmployeeInput {
	return EmployeeInput{
		CPF:         "123.456.789-00",
		Name:        "Ana Silva",
		BirthDate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		RaceColor:   "parda",
		Sex:         "feminino",
		Nationality: "brasileira",
		BirthState:  "SP",
		BirthCity:   "Campinas",
		Phone:       "(19) 98765-4321",
	}
}

func TestScenario_AnaSilva(t *testing.T) {
	ctx := context.Background()
	employees, contacts := newServices(t)

	e, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.True(t, e.CreatedAt.Equal(fixedNow))
	assert.True(t, e.UpdatedAt.Equal(e.CreatedAt))

	c, err := contacts.Create(ctx, ContactInput{EmployeeID: 1, Type: "email", Value: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, int64(1), c.EmployeeID)
	assert.False(t, c.IsPrimary)

	list, err := contacts.ListByEmployee(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana@example.com", list[0].Value)

	require.NoError(t, employees.Delete(ctx, 1))

	list, err = contacts.ListByEmployee(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = contacts.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployee_CreateDuplicateCPF(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)

	_, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)

	_, err = employees.Create(ctx, anaSilva())
	assert.ErrorIs(t, err, ErrConflict)

	all, err := employees.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEmployee_GetErrors(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)

	_, err := employees.GetByID(ctx, 7)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found: employee with id 7", err.Error())

	_, err = employees.GetByCPF(ctx, "999.999.999-99")
	assert.ErrorIs(t, err, ErrNotFound)

	err = employees.Delete(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployee_GetByCPF(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)

	created, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)

	got, err := employees.GetByCPF(ctx, "123.456.789-00")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestEmployee_Update(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)

	created, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)

	// mesmo CPF no update não é conflito
	in := anaSilva()
	in.Name = "Ana Souza"
	in.SocialName = "Aninha"
	updated, err := employees.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ana Souza", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	// relógio parado: ainda assim updatedAt avança
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	again, err := employees.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))

	stored, err := employees.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aninha", stored.SocialName)
	assert.True(t, stored.UpdatedAt.Equal(again.UpdatedAt))
}

func TestEmployee_UpdateCPFConflict(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)

	_, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)

	other := anaSilva()
	other.CPF = "987.654.321-00"
	other.Name = "Bruno Lima"
	b, err := employees.Create(ctx, other)
	require.NoError(t, err)

	other.CPF = "123.456.789-00"
	_, err = employees.Update(ctx, b.ID, other)
	assert.ErrorIs(t, err, ErrConflict)

	// CPF livre pode ser trocado
	other.CPF = "111.222.333-44"
	updated, err := employees.Update(ctx, b.ID, other)
	require.NoError(t, err)
	assert.Equal(t, "111.222.333-44", updated.CPF)
}

func TestEmployee_UpdateMissing(t *testing.T) {
	employees, _ := newServices(t)
	_, err := employees.Update(context.Background(), 42, anaSilva())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployee_Validation(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)

	tests := []struct {
		name  string
		edit  func(in *EmployeeInput)
		field string
	}{
		{"cpf sem máscara", func(in *EmployeeInput) { in.CPF = "12345678900" }, "cpf"},
		{"cpf vazio", func(in *EmployeeInput) { in.CPF = "" }, "cpf"},
		{"nome curto", func(in *EmployeeInput) { in.Name = "Al" }, "name"},
		{"data futura", func(in *EmployeeInput) { in.BirthDate = fixedNow.AddDate(0, 0, 1) }, "birthDate"},
		{"data de hoje", func(in *EmployeeInput) { in.BirthDate = fixedNow }, "birthDate"},
		{"sem data", func(in *EmployeeInput) { in.BirthDate = time.Time{} }, "birthDate"},
		{"sexo inválido", func(in *EmployeeInput) { in.Sex = "x" }, "sex"},
		{"uf com 3 letras", func(in *EmployeeInput) { in.BirthState = "SPX" }, "birthState"},
		{"telefone fixo", func(in *EmployeeInput) { in.Phone = "(11) 3333-4444" }, "phone"},
		{"sem cidade", func(in *EmployeeInput) { in.BirthCity = "" }, "birthCity"},
		{"cidade em branco", func(in *EmployeeInput) { in.BirthCity = " " }, "birthCity"},
		{"raça/cor em branco", func(in *EmployeeInput) { in.RaceColor = "   " }, "raceColor"},
		{"nacionalidade em branco", func(in *EmployeeInput) { in.Nationality = "  " }, "nationality"},
		{"telefone em branco", func(in *EmployeeInput) { in.Phone = "  " }, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := anaSilva()
			tt.edit(&in)
			_, err := employees.Create(ctx, in)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	all, err := employees.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmployee_SexAlias(t *testing.T) {
	employees, _ := newServices(t)
	in := anaSilva()
	in.Sex = "feminine"
	e, err := employees.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.SexFeminine, e.Sex)
}

func TestContact_CreateUnknownEmployee(t *testing.T) {
	ctx := context.Background()
	_, contacts := newServices(t)

	_, err := contacts.Create(ctx, ContactInput{EmployeeID: 99, Type: "email", Value: "x@y.z"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found: employee with id 99", err.Error())

	list, err := contacts.ListByEmployee(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmployee_BirthDateTodayInLocation(t *testing.T) {
	ctx := context.Background()
	employees, _ := newServices(t)
	// 01:00 UTC de 10/05 ainda é 09/05 em Brasília
	employees.SetClock(func() time.Time { return time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC) })
	employees.SetLocation(time.FixedZone("BRT", -3*60*60))

	in := anaSilva()
	in.BirthDate = time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	_, err := employees.Create(ctx, in)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
	assert.Equal(t, "birthDate must be in the past", verr.Fields["birthDate"])

	in.BirthDate = time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	_, err = employees.Create(ctx, in)
	require.NoError(t, err)
}

func TestContact_CreateEachType(t *testing.T) {
	ctx := context.Background()
	employees, contacts := newServices(t)

	e, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)

	for _, typ := range []string{"email", "celular", "telefone", "mobile", "landline"} {
		_, err := contacts.Create(ctx, ContactInput{EmployeeID: e.ID, Type: typ, Value: "ana@example.com"})
		require.NoError(t, err, typ)
	}

	list, err := contacts.ListByEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestContact_Validation(t *testing.T) {
	ctx := context.Background()
	_, contacts := newServices(t)

	_, err := contacts.Create(ctx, ContactInput{Type: "fax", Value: ""})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "employeeId")
	assert.Equal(t, "type must be email or celular or telefone", verr.Fields["type"])
	assert.Contains(t, verr.Fields, "value")
}

func TestContact_UpdateIgnoresEmployeeID(t *testing.T) {
	ctx := context.Background()
	employees, contacts := newServices(t)

	e, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)
	c, err := contacts.Create(ctx, ContactInput{EmployeeID: e.ID, Type: "mobile", Value: "(19) 98765-4321"})
	require.NoError(t, err)
	assert.Equal(t, models.ContactMobile, c.Type)

	updated, err := contacts.Update(ctx, c.ID, ContactInput{
		EmployeeID:  555,
		Type:        "landline",
		Value:       "(19) 3232-1010",
		Description: "Casa",
		IsPrimary:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.EmployeeID)
	assert.Equal(t, models.ContactLandline, updated.Type)
	assert.True(t, updated.IsPrimary)
	assert.True(t, updated.CreatedAt.Equal(c.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(c.UpdatedAt))

	stored, err := contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, stored.EmployeeID)
	assert.Equal(t, "Casa", stored.Description)
}

func TestContact_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	_, contacts := newServices(t)

	_, err := contacts.Update(ctx, 3, ContactInput{Type: "email", Value: "a@b.c"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = contacts.Delete(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found: contact with id 3", err.Error())
}

func TestContact_Delete(t *testing.T) {
	ctx := context.Background()
	employees, contacts := newServices(t)

	e, err := employees.Create(ctx, anaSilva())
	require.NoError(t, err)
	c, err := contacts.Create(ctx, ContactInput{EmployeeID: e.ID, Type: "email", Value: "ana@example.com"})
	require.NoError(t, err)

	require.NoError(t, contacts.Delete(ctx, c.ID))
	_, err = contacts.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
