package status

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	statusmodel "github.com/curryhouse/menubot/backend/internal/model/status"
)

func setupRouter() (*chi.Mux, *statusmodel.MemoryStore) {
	store := statusmodel.NewMemoryStore()
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestCreateStatusCheck(t *testing.T) {
	r, _ := setupRouter()
	payload, _ := json.Marshal(map[string]string{"client_name": "web"})

	req := httptest.NewRequest(http.MethodPost, "/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var check statusmodel.Check
	if err := json.Unmarshal(resp.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if check.ID == "" {
		t.Fatal("expected a generated id")
	}
	if check.ClientName != "web" {
		t.Fatalf("unexpected client name: %s", check.ClientName)
	}
	if check.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}
}

func TestCreateStatusCheckMissingName(t *testing.T) {
	r, store := setupRouter()
	payload := []byte(`{}`)

	req := httptest.NewRequest(http.MethodPost, "/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if items, _ := store.List(req.Context(), 0); len(items) != 0 {
		t.Fatalf("invalid request stored %d checks", len(items))
	}
}

func TestListStatusChecks(t *testing.T) {
	r, _ := setupRouter()

	for _, name := range []string{"web", "mobile"} {
		payload, _ := json.Marshal(map[string]string{"client_name": name})
		req := httptest.NewRequest(http.MethodPost, "/status", bytes.NewReader(payload))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("seed request failed: %d", resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var checks []statusmodel.Check
	if err := json.Unmarshal(resp.Body.Bytes(), &checks); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	if checks[0].ClientName != "web" || checks[1].ClientName != "mobile" {
		t.Fatalf("checks out of order: %s, %s", checks[0].ClientName, checks[1].ClientName)
	}
}

func TestListStatusChecksEmpty(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := bytes.TrimSpace(resp.Body.Bytes()); string(body) != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}
