package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/deppfellow/accounts-api/internal/errs"
	"github.com/deppfellow/accounts-api/internal/handler"
	"github.com/deppfellow/accounts-api/internal/model"
	"github.com/deppfellow/accounts-api/internal/repository"
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/deppfellow/accounts-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]model.Account
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1, accounts: map[int64]model.Account{}}
}

func (m *memoryStore) Create(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	a.ID = m.nextID
	m.nextID++
	m.accounts[a.ID] = *a
	return nil
}

func (m *memoryStore) Find(_ context.Context, id int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (m *memoryStore) Update(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; ok {
		m.accounts[a.ID] = *a
	}
	return nil
}

func (m *memoryStore) Delete(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, a.ID)
	return nil
}

func (m *memoryStore) All(_ context.Context) ([]*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]*model.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// ---- helpers ----

func newTestRouter(t *testing.T, store *memoryStore, db service.Pinger) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{Config: config.DefaultConfig(), Logger: &logger}
	services := &service.Services{
		Account: service.NewAccountService(store),
		Health:  service.NewHealthService(db),
	}
	return NewRouter(s, handler.NewHandlers(s, services))
}

func doRequest(e *echo.Echo, method, url, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(e *echo.Echo, method, url string, payload any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	return doRequest(e, method, url, string(b), echo.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func accountPayload(n int) map[string]any {
	return map[string]any{
		"name":         fmt.Sprintf("Account %d", n),
		"email":        fmt.Sprintf("user%d@example.com", n),
		"address":      fmt.Sprintf("%d Main St", n),
		"phone_number": fmt.Sprintf("555-010%d", n),
		"date_joined":  "2024-02-29",
	}
}

func createAccount(t *testing.T, e *echo.Echo, n int) map[string]any {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/accounts", accountPayload(n))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)
}

func accountURL(account map[string]any) string {
	return fmt.Sprintf("/accounts/%v", account["id"])
}

// ---- system routes ----

func TestIndex(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})

	rec := doRequest(e, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Account REST API Service","version":"1.0"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{err: errors.New("down")})

	// Liveness does not depend on the database.
	rec := doRequest(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		db     service.Pinger
		status int
		state  string
	}{
		{"database up", pinger{}, http.StatusOK, "healthy"},
		{"database down", pinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unhealthy"},
		{"no database", nil, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestRouter(t, newMemoryStore(), tt.db)

			rec := doRequest(e, http.MethodGet, "/health/ready", "", "")
			assert.Equal(t, tt.status, rec.Code)

			body := decode[map[string]any](t, rec)
			assert.Equal(t, tt.state, body["status"])
			checks := body["checks"].(map[string]any)
			assert.Equal(t, tt.state, checks["database"].(map[string]any)["status"])
		})
	}
}

// ---- accounts ----

func TestCreateAccount(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	payload := accountPayload(1)

	rec := doJSON(e, http.MethodPost, "/accounts", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[map[string]any](t, rec)
	assert.Equal(t, float64(1), created["id"])
	for _, field := range []string{"name", "email", "address", "phone_number", "date_joined"} {
		assert.Equal(t, payload[field], created[field], field)
	}
	assert.Equal(t, "/accounts/1", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func TestCreateThenRead(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	payload := accountPayload(2)
	payload["phone_number"] = nil

	rec := doJSON(e, http.MethodPost, "/accounts", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)

	read := doRequest(e, http.MethodGet, location, "", "")
	require.Equal(t, http.StatusOK, read.Code)

	got := decode[map[string]any](t, read)
	for _, field := range []string{"name", "email", "address", "phone_number", "date_joined"} {
		assert.Equal(t, payload[field], got[field], field)
	}
}

func TestCreateAccount_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not enough data", `{"name":"not enough data"}`},
		{"malformed json", `{"name":`},
		{"empty body", ``},
		{"array", `[]`},
		{"wrong type", `{"name":1,"email":"e@example.com","address":"a"}`},
		{"bad date", `{"name":"n","email":"e@example.com","address":"a","date_joined":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			e := newTestRouter(t, store, pinger{})

			rec := doRequest(e, http.MethodPost, "/accounts", tt.body, echo.MIMEApplicationJSON)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Status)
			assert.NotEmpty(t, body.Message)
			assert.Empty(t, store.accounts)
		})
	}
}

func TestCreateAccount_UnsupportedMediaType(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	valid, _ := json.Marshal(accountPayload(1))

	for _, contentType := range []string{"text/html", "test/html", "", "application/json; charset=utf-8"} {
		t.Run(contentType, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/accounts", string(valid), contentType)
			assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "Content-Type must be application/json", body.Message)
		})
	}

	// Content type is checked before the body is parsed.
	rec := doRequest(e, http.MethodPost, "/accounts", `{"name":`, "text/html")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestListAccounts(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})

	rec := doRequest(e, http.MethodGet, "/accounts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for i := range 5 {
		createAccount(t, e, i)
	}

	rec = doRequest(e, http.MethodGet, "/accounts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 5)
	for i, account := range list {
		assert.Equal(t, accountPayload(i)["name"], account["name"])
	}
}

func TestReadAccount_NotFound(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})

	for _, id := range []string{"0", "1", "-1", "abc"} {
		t.Run(id, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, "/accounts/"+id, "", "")
			assert.Equal(t, http.StatusNotFound, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "Account with id "+id+" not found", body.Message)
		})
	}
}

func TestUpdateAccount(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	created := createAccount(t, e, 1)

	update := accountPayload(9)
	update["id"] = 12345
	delete(update, "phone_number")

	rec := doJSON(e, http.MethodPut, accountURL(created), update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, accountURL(created), rec.Header().Get(echo.HeaderLocation))

	updated := decode[map[string]any](t, rec)
	assert.Equal(t, created["id"], updated["id"], "id comes from the path, never the body")
	assert.Nil(t, updated["phone_number"])

	read := decode[map[string]any](t, doRequest(e, http.MethodGet, accountURL(created), "", ""))
	assert.Equal(t, update["name"], read["name"])
	assert.Equal(t, update["email"], read["email"])
	assert.Equal(t, update["address"], read["address"])
	assert.Nil(t, read["phone_number"])
}

func TestUpdateAccount_Failures(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	created := createAccount(t, e, 1)

	tests := []struct {
		name        string
		url         string
		body        string
		contentType string
		status      int
	}{
		{"missing account valid body", "/accounts/0", `{"name":"a","email":"b","address":"c"}`, echo.MIMEApplicationJSON, http.StatusNotFound},
		{"missing account invalid body", "/accounts/0", `{"name":"x"}`, echo.MIMEApplicationJSON, http.StatusNotFound},
		{"missing account bad json", "/accounts/77", `nope`, echo.MIMEApplicationJSON, http.StatusNotFound},
		{"partial body", accountURL(created), `{"name":"not enough data"}`, echo.MIMEApplicationJSON, http.StatusBadRequest},
		{"wrong media type", accountURL(created), `{"name":"a","email":"b","address":"c"}`, "text/html", http.StatusUnsupportedMediaType},
		{"no id segment", "/accounts", `{"name":"a","email":"b","address":"c"}`, echo.MIMEApplicationJSON, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPut, tt.url, tt.body, tt.contentType)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	read := decode[map[string]any](t, doRequest(e, http.MethodGet, accountURL(created), "", ""))
	assert.Equal(t, created["name"], read["name"], "failed updates leave the account untouched")
}

func TestUpdateAccount_FieldErrorsUseWireNames(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	created := createAccount(t, e, 1)

	update := accountPayload(1)
	update["name"] = ""

	rec := doJSON(e, http.MethodPut, accountURL(created), update)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, body.Errors)
}

func TestAccountRoutes_ExtraPathSegment(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	created := createAccount(t, e, 1)
	url := accountURL(created) + "/x"

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			valid, _ := json.Marshal(accountPayload(2))
			rec := doRequest(e, method, url, string(valid), echo.MIMEApplicationJSON)
			require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "Route not found", body.Message)
		})
	}

	read := decode[map[string]any](t, doRequest(e, http.MethodGet, accountURL(created), "", ""))
	assert.Equal(t, created["name"], read["name"])
}

func TestCreateAccount_BodyTooLarge(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})

	payload := accountPayload(1)
	payload["address"] = strings.Repeat("a", 2<<20)

	rec := doJSON(e, http.MethodPost, "/accounts", payload)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", body.Code)

	list := decode[[]map[string]any](t, doRequest(e, http.MethodGet, "/accounts", "", ""))
	assert.Empty(t, list)
}

func TestDeleteAccount(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})
	created := createAccount(t, e, 1)

	rec := doRequest(e, http.MethodDelete, accountURL(created), "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(e, http.MethodGet, accountURL(created), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, accountURL(created), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})

	tests := []struct {
		method string
		url    string
	}{
		{http.MethodPut, "/accounts"},
		{http.MethodDelete, "/accounts"},
		{http.MethodPatch, "/accounts/1"},
		{http.MethodPost, "/accounts/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			rec := doRequest(e, tt.method, tt.url, "", "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
		})
	}
}

func TestStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failWith = errors.New("connection refused")
	e := newTestRouter(t, store, pinger{})

	rec := doRequest(e, http.MethodGet, "/accounts", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	rec = doJSON(e, http.MethodPost, "/accounts", accountPayload(1))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	e := newTestRouter(t, newMemoryStore(), pinger{})

	for _, url := range []string{"/", "/accounts", "/accounts/0"} {
		t.Run(url, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, url, "", "")
			h := rec.Header()

			assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
			assert.Equal(t, "1; mode=block", h.Get("X-XSS-Protection"))
			assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
			assert.Equal(t, "default-src 'self'; object-src 'none'", h.Get("Content-Security-Policy"))
			assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
			assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, h.Get(echo.HeaderXRequestID))
		})
	}
}

func TestConcurrentCreates(t *testing.T) {
	store := newMemoryStore()
	e := newTestRouter(t, store, pinger{})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec := doJSON(e, http.MethodPost, "/accounts", accountPayload(n))
			assert.Equal(t, http.StatusCreated, rec.Code)
		}(i)
	}
	wg.Wait()

	list := decode[[]map[string]any](t, doRequest(e, http.MethodGet, "/accounts", "", ""))
	assert.Len(t, list, 20)
}
