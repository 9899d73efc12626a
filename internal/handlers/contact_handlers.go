package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ccm/recadastramento/internal/models"
	"github.com/ccm/recadastramento/internal/service"
	"github.com/ccm/recadastramento/internal/utils"
)

type ContactService interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Create(ctx context.Context, in service.ContactInput) (*models.Contact, error)
	Update(ctx context.Context, id int64, in service.ContactInput) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type ContactHandler struct {
	Svc     ContactService
	Pub     Publisher
	Timeout time.Duration
}

func NewContactHandler(svc ContactService, pub Publisher, timeout time.Duration) *ContactHandler {
	return &ContactHandler{Svc: svc, Pub: pub, Timeout: timeout}
}

// /api/contacts (só POST; a listagem é por funcionário)
func (h *ContactHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	in, ok := decodeContact(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()
	c, err := h.Svc.Create(ctx, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.publishEvent("Cadastro", c)
	utils.WriteJSON(w, http.StatusCreated, toContactResponse(c))
}

// /api/contacts/{id} e /api/contacts/employee/{employeeId}
func (h *ContactHandler) ContactByID(w http.ResponseWriter, r *http.Request) {
	parts, ok := pathParts(r.URL.Path, "contacts")
	if !ok {
		notFoundRoute(w)
		return
	}

	if len(parts) == 2 && parts[0] == "employee" {
		h.contactsByEmployee(w, r, parts[1])
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
		c, err := h.Svc.GetByID(ctx, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, toContactResponse(c))

	case http.MethodPut:
		in, ok := decodeContact(w, r, false)
		if !ok {
			return
		}

		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()
		c, err := h.Svc.Update(ctx, id, in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		h.publishEvent("Edição", c)
		utils.WriteJSON(w, http.StatusOK, toContactResponse(c))

	case http.MethodDelete:
		ctx, cancel := withTimeout(r, h.Timeout)
		defer cancel()

		c, err := h.Svc.GetByID(ctx, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if err := h.Svc.Delete(ctx, id); err != nil {
			writeServiceError(w, r, err)
			return
		}

		h.publishEvent("Exclusão", c)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ContactHandler) contactsByEmployee(w http.ResponseWriter, r *http.Request, raw string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	employeeID, err := parseID(raw)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()
	list, err := h.Svc.ListByEmployee(ctx, employeeID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toContactResponses(list))
}

func decodeContact(w http.ResponseWriter, r *http.Request, create bool) (service.ContactInput, bool) {
	var dto ContactRequest
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return service.ContactInput{}, false
	}
	in := dto.toInput()
	if err := in.Validate(create); err != nil {
		writeServiceError(w, r, err)
		return service.ContactInput{}, false
	}
	return in, true
}

func (h *ContactHandler) publishEvent(acao string, c *models.Contact) {
	if h.Pub == nil || c == nil {
		return
	}
	label := fmt.Sprintf("%s %s (FUNCIONÁRIO %d)", c.Type, c.Value, c.EmployeeID)
	publish(h.Pub, acao, "CONTATO", label, amqp.Table{
		"entity":      "contact",
		"id":          c.ID,
		"employee_id": c.EmployeeID,
		"type":        c.Type,
	})
}
