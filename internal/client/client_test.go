package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
)

func TestClientRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/attempts/7", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("fetch method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		if r.Header.Get(dto.RequestIDHeader) == "" {
			t.Error("missing request id")
		}
		_ = json.NewEncoder(w).Encode(dto.AttemptDetailDTO{
			AttemptDTO: dto.AttemptDTO{ID: 7, Status: "in_progress", RemainingSeconds: 90},
			Questions:  []dto.QuestionDTO{{ID: 1}, {ID: 2}},
		})
	})
	mux.HandleFunc("/api/v1/attempts/7/responses/2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("save method = %s", r.Method)
		}
		var req dto.ResponseUpsertDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode save body: %v", err)
		}
		if req.Answer != model.Numeric(1.5) || req.Status != "answered" || req.TimeSpentDelta != 9 {
			t.Errorf("save body = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(dto.ResponseDTO{QuestionID: 2, Answer: req.Answer, Status: req.Status, TimeSpentSeconds: 21})
	})
	mux.HandleFunc("/api/v1/attempts/7/submit", func(w http.ResponseWriter, r *http.Request) {
		var req dto.SubmitAttemptDTO
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Reason != "focus_lost" {
			t.Errorf("submit reason = %q", req.Reason)
		}
		_ = json.NewEncoder(w).Encode(dto.AttemptDetailDTO{AttemptDTO: dto.AttemptDTO{ID: 7, Status: "completed"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/api/v1/", Token: "tok"})
	ctx := context.Background()

	detail, err := c.FetchAttempt(ctx, 7)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if detail.RemainingSeconds != 90 || len(detail.Questions) != 2 {
		t.Fatalf("fetched = %+v", detail)
	}

	saved, err := c.SaveResponse(ctx, 7, 2, dto.ResponseUpsertDTO{Answer: model.Numeric(1.5), Status: "answered", TimeSpentDelta: 9})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.TimeSpentSeconds != 21 || saved.Answer != model.Numeric(1.5) {
		t.Fatalf("saved = %+v", saved)
	}

	done, err := c.SubmitAttempt(ctx, 7, model.SubmitFocusLost)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.Status != "completed" {
		t.Fatalf("submitted = %+v", done)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		message   string
		retryable bool
		conflict  bool
	}{
		{name: "json error body", status: http.StatusForbidden, body: `{"message":"attempt belongs to another student"}`, message: "attempt belongs to another student"},
		{name: "conflict", status: http.StatusConflict, body: `{"message":"attempt is already completed"}`, message: "attempt is already completed", conflict: true},
		{name: "plain text", status: http.StatusBadGateway, body: "upstream down\n", message: "upstream down", retryable: true},
		{name: "throttled", status: http.StatusTooManyRequests, body: `{"message":"Too many requests"}`, message: "Too many requests", retryable: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(Config{BaseURL: srv.URL}).SubmitAttempt(context.Background(), 1, model.SubmitManual)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tc.status || apiErr.Message != tc.message {
				t.Fatalf("api error = %+v", apiErr)
			}
			if apiErr.Retryable() != tc.retryable {
				t.Fatalf("Retryable() = %v, want %v", apiErr.Retryable(), tc.retryable)
			}
			if apiErr.Conflict() != tc.conflict {
				t.Fatalf("Conflict() = %v, want %v", apiErr.Conflict(), tc.conflict)
			}
		})
	}
}
