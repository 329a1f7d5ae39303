package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ophasebot/entity"
)

type fakeHandler struct {
	token     string
	status    entity.Status
	grants    []*entity.GrantRecord
	grantsErr error
	limit     int
}

func (f *fakeHandler) AuthenticateByToken(token string) error {
	if token != f.token {
		return errors.New("invalid token")
	}
	return nil
}

func (f *fakeHandler) Status() entity.Status {
	return f.status
}

func (f *fakeHandler) Grants(limit int) ([]*entity.GrantRecord, error) {
	f.limit = limit
	return f.grants, f.grantsErr
}

type envelope struct {
	Data          json.RawMessage `json:"data"`
	Success       bool            `json:"success"`
	StatusMessage string          `json:"status_message"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func do(t *testing.T, h http.Handler, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestStatus(t *testing.T) {
	handler := &fakeHandler{
		token: "tok",
		status: entity.Status{
			Configured:   true,
			TrackerReady: true,
			LastUses:     7,
			JoinGrants:   2,
			StartedAt:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	router := NewRouter(testLogger(), handler)

	rec, env := do(t, router, "/v1/status", "tok")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("code %d, body %s", rec.Code, rec.Body.String())
	}
	var st entity.Status
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !st.TrackerReady || st.LastUses != 7 || st.JoinGrants != 2 {
		t.Errorf("unexpected status %+v", st)
	}
}

func TestAuthRequired(t *testing.T) {
	router := NewRouter(testLogger(), &fakeHandler{token: "tok"})

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"wrong token", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, "/v1/status", tt.token)
			if rec.Code != http.StatusUnauthorized || env.Success {
				t.Fatalf("code %d, success %v", rec.Code, env.Success)
			}
		})
	}
}

func TestGrants(t *testing.T) {
	handler := &fakeHandler{
		token: "tok",
		grants: []*entity.GrantRecord{
			{ID: "a", Source: entity.SourceJoin, Outcome: entity.OutcomeGranted},
		},
	}
	router := NewRouter(testLogger(), handler)

	rec, env := do(t, router, "/v1/grants?limit=10", "tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("code %d, body %s", rec.Code, rec.Body.String())
	}
	if handler.limit != 10 {
		t.Errorf("limit = %d", handler.limit)
	}
	var records []entity.GrantRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode grants: %v", err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Errorf("unexpected records %+v", records)
	}

	rec, _ = do(t, router, "/v1/grants?limit=abc", "tok")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid limit code %d", rec.Code)
	}
}

func TestGrantsStoreError(t *testing.T) {
	handler := &fakeHandler{token: "tok", grantsErr: errors.New("grant log not connected")}
	rec, env := do(t, NewRouter(testLogger(), handler), "/v1/grants", "tok")
	if rec.Code != http.StatusInternalServerError || env.Success {
		t.Fatalf("code %d, success %v", rec.Code, env.Success)
	}
}

func TestNotFound(t *testing.T) {
	rec, env := do(t, NewRouter(testLogger(), &fakeHandler{}), "/missing", "")
	if rec.Code != http.StatusNotFound || env.Success {
		t.Fatalf("code %d", rec.Code)
	}
}
