package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccm/recadastramento/internal/db"
	"github.com/ccm/recadastramento/internal/repository"
	"github.com/ccm/recadastramento/internal/service"
)

// Fluxo completo pela API com SQLite em memória.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseSQL(gdb) })
	_, err = db.Migrate(gdb, db.DialectSQLite)
	require.NoError(t, err)

	employees := service.NewEmployeeService(repository.NewEmployeeRepository(gdb))
	contacts := service.NewContactService(repository.NewContactRepository(gdb), employees)

	mux := http.NewServeMux()
	Register(mux, NewEmployeeHandler(employees, nil, 0), NewContactHandler(contacts, nil, 0))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestAPI_AnaSilvaScenario(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/employees", validEmployeeBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var emp EmployeeResponse
	require.NoError(t, json.Unmarshal(body, &emp))
	assert.Equal(t, int64(1), emp.ID)
	assert.Equal(t, "1990-01-01", emp.BirthDate)

	resp, body = do(t, http.MethodPost, srv.URL+"/api/employees", validEmployeeBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	resp, body = do(t, http.MethodPost, srv.URL+"/api/contacts", `{"employeeId":1,"type":"email","value":"ana@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var con ContactResponse
	require.NoError(t, json.Unmarshal(body, &con))
	assert.Equal(t, int64(1), con.ID)
	assert.Equal(t, int64(1), con.EmployeeID)

	resp, body = do(t, http.MethodPost, srv.URL+"/api/contacts", `{"employeeId":2,"type":"email","value":"x@y.z"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/api/contacts/employee/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []ContactResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/employees/cpf/12345678900", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/employees/1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/contacts/employee/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/contacts/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
