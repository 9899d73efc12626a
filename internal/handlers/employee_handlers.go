package handlers

import (
	"context"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/service"
	"github.com/ccm/recadastramento/internal/utils"
)

type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Employee, error)
	Create(ctx context.Context, in service.EmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, id int64, in service.EmployeeInput) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type EmployeeHandler struct {
	Svc      EmployeeService
	Pub      Publisher
	Timeout  time.Duration
	Location *time.Location // fuso do "hoje" da data de nascimento; nil = UTC
}

func NewEmployeeHandler(svc EmployeeService, pub Publisher, timeout time.Duration) *EmployeeHandler {
	return &EmployeeHandler{Svc: svc, Pub: pub, Timeout: timeout}
}

// /api/employees
func (h *EmployeeHandler) Employees(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	case http.MethodGet:
		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()
		list, err := h.Svc.List(ctx)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, toEmployeeResponses(list))

	case http.MethodPost:
		in, ok := h.decodeEmployee(w, r)
		if !ok {
			return
		}

		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()
		e, err := h.Svc.Create(ctx, in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		h.publishEvent("Cadastro", e)
		utils.WriteJSON(w, http.StatusCreated, toEmployeeResponse(e))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// /api/employees/{id} e /api/employees/cpf/{cpf}
func (h *EmployeeHandler) EmployeeByID(w http.ResponseWriter, r *http.Request) {
	parts, ok := pathParts(r.URL.Path, "employees")
	if !ok {
		notFoundRoute(w)
		return
	}

	if len(parts) == 2 && parts[0] == "cpf" {
		h.employeeByCPF(w, r, parts[1])
		return
	}
	if len(parts) != 1 {
		notFoundRoute(w)
		return
	}

	id, err := parseID(parts[0])
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()
		e, err := h.Svc.GetByID(ctx, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, toEmployeeResponse(e))

	case http.MethodPut:
		in, ok := h.decodeEmployee(w, r)
		if !ok {
			return
		}

		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()
		e, err := h.Svc.Update(ctx, id, in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		h.publishEvent("Edição", e)
		utils.WriteJSON(w, http.StatusOK, toEmployeeResponse(e))

	case http.MethodDelete:
		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()

		// busca antes de deletar para o evento levar nome e CPF
		e, err := h.Svc.GetByID(ctx, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if err := h.Svc.Delete(ctx, id); err != nil {
			writeServiceError(w, r, err)
			return
		}

		h.publishEvent("Exclusão", e)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *EmployeeHandler) employeeByCPF(w http.ResponseWriter, r *http.Request, raw string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()
	e, err := h.Svc.GetByCPF(ctx, utils.CanonicalCPF(raw))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toEmployeeResponse(e))
}

// decodeEmployee lê o corpo e valida antes de chegar no service.
func (h *EmployeeHandler) decodeEmployee(w http.ResponseWriter, r *http.Request) (service.EmployeeInput, bool) {
	var dto EmployeeRequest
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return service.EmployeeInput{}, false
	}
	in, err := dto.toInput()
	if err == nil {
		err = in.Validate(h.today())
	}
	if err != nil {
		writeServiceError(w, r, err)
		return service.EmployeeInput{}, false
	}
	return in, true
}

func (h *EmployeeHandler) today() time.Time {
	if h.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(h.Location)
}

func (h *EmployeeHandler) publishEvent(acao string, e *models.Employee) {
	if h.Pub == nil || e == nil {
		return
	}
	// nome social tem preferência
	nome := e.SocialName
	if nome == "" {
		nome = e.Name
	}
	publish(h.Pub, acao, "FUNCIONÁRIO", nome, amqp.Table{
		"entity": "employee",
		"id":     e.ID,
		"cpf":    e.CPF,
		"nome":   nome,
	})
}
