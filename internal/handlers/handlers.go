package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ccm/recadastramento/internal/service"
	"github.com/ccm/recadastramento/internal/utils"
)

const defaultTimeout = 5 * time.Second

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp.Table) error
	Close() error
}

// Register monta as rotas da API no mux.
func Register(mux *http.ServeMux, eh *EmployeeHandler, ch *ContactHandler) {
	mux.HandleFunc("/healthz", Health)
	mux.HandleFunc("/api/employees", eh.Employees)
	mux.HandleFunc("/api/employees/", eh.EmployeeByID)
	mux.HandleFunc("/api/contacts", ch.Contacts)
	mux.HandleFunc("/api/contacts/", ch.ContactByID)
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathParts quebra /api/<resource>/... e devolve o que vem depois do recurso.
func pathParts(path, resource string) ([]string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != resource {
		return nil, false
	}
	for _, p := range parts[2:] {
		if p == "" {
			return nil, false
		}
	}
	return parts[2:], true
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func withTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(r.Context(), d)
}

func notFoundRoute(w http.ResponseWriter) {
	utils.WriteError(w, http.StatusNotFound, "not found")
}

// writeServiceError traduz os erros do service em status HTTP.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(w, "validation failed", verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		utils.WriteError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request_failed", "method", r.Method, "path", r.URL.Path, "err", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// publish é best-effort: falha no broker não derruba a requisição.
func publish(pub Publisher, acao, entidade, label string, headers amqp.Table) {
	if pub == nil {
		return
	}
	msg := fmt.Sprintf("%s de %s %s", acao, entidade, label)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	headers["action"] = strings.ToLower(acao) // cadastro|edição|exclusão
	headers["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if err := pub.Publish(ctx, msg, headers); err != nil {
		slog.Warn("event_publish_failed", "entity", headers["entity"], "err", err)
	}
}
