package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curryhouse/menubot/backend/internal/config"
	chatmodel "github.com/curryhouse/menubot/backend/internal/model/chat"
	chatservice "github.com/curryhouse/menubot/backend/internal/service/chat"
)

type staticResponder struct {
	reply string
}

func (s staticResponder) Reply(context.Context, []chatmodel.Turn, string) (string, error) {
	return s.reply, nil
}

type failingLog struct{}

func (failingLog) Append(context.Context, chatmodel.Turn) error {
	return errors.New("insert failed")
}

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{Capacity: 8, TTL: time.Minute, HistoryLimit: 20}
}

func setupRouter(responder chatservice.Responder, turnLog chatmodel.TurnLog) *chi.Mux {
	svc := chatservice.NewService(responder, turnLog, sessionConfig())
	handler := New(svc, "menu text for tests")

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestChatNewSession(t *testing.T) {
	turnLog := chatmodel.NewMemoryLog()
	r := setupRouter(staticResponder{reply: "our wings come in 5pc, 10pc, or a 20pc sampler"}, turnLog)

	resp := postChat(t, r, map[string]string{"message": "wings"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body chatResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if body.Response == "" {
		t.Fatal("expected a non-empty response")
	}
	if body.Warning != "" {
		t.Fatalf("unexpected warning: %s", body.Warning)
	}

	turns := turnLog.Turns()
	if len(turns) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(turns))
	}
	if turns[0].SessionID != body.SessionID {
		t.Fatalf("log session id mismatch: %s vs %s", turns[0].SessionID, body.SessionID)
	}
}

func TestChatEchoesSessionID(t *testing.T) {
	turnLog := chatmodel.NewMemoryLog()
	r := setupRouter(staticResponder{reply: "prices vary by location"}, turnLog)

	first := postChat(t, r, map[string]string{"message": "wings"})
	var firstBody chatResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	second := postChat(t, r, map[string]string{"session_id": firstBody.SessionID, "message": "and pricing?"})
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", second.Code)
	}

	var secondBody chatResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if secondBody.SessionID != firstBody.SessionID {
		t.Fatalf("session id not echoed: %s vs %s", secondBody.SessionID, firstBody.SessionID)
	}

	if got := len(turnLog.Turns()); got != 2 {
		t.Fatalf("expected 2 log entries, got %d", got)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	turnLog := chatmodel.NewMemoryLog()
	r := setupRouter(staticResponder{reply: "unused"}, turnLog)

	resp := postChat(t, r, map[string]string{"message": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if got := len(turnLog.Turns()); got != 0 {
		t.Fatalf("expected zero log entries, got %d", got)
	}
}

func TestChatInvalidBody(t *testing.T) {
	r := setupRouter(staticResponder{reply: "unused"}, chatmodel.NewMemoryLog())

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatModelUnavailable(t *testing.T) {
	turnLog := chatmodel.NewMemoryLog()
	r := setupRouter(nil, turnLog)

	resp := postChat(t, r, map[string]string{"message": "wings"})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if got := len(turnLog.Turns()); got != 0 {
		t.Fatalf("expected zero log entries, got %d", got)
	}
}

func TestChatLogFailureReturnsWarning(t *testing.T) {
	r := setupRouter(staticResponder{reply: "still a good answer"}, failingLog{})

	resp := postChat(t, r, map[string]string{"message": "wings"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body chatResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Response != "still a good answer" {
		t.Fatalf("reply discarded: %q", body.Response)
	}
	if body.Warning == "" {
		t.Fatal("expected a persistence warning")
	}
}

func TestMenuEndpoint(t *testing.T) {
	r := setupRouter(staticResponder{reply: "unused"}, chatmodel.NewMemoryLog())

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["menu"] != "menu text for tests" {
		t.Fatalf("unexpected menu payload: %q", body["menu"])
	}
}
