package googletasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"taskmenu/internal/backend/googletasks"
	"taskmenu/internal/config"
	"taskmenu/internal/service"
)

// newTestClient starts an httptest server with the given handler and returns
// a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *googletasks.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func apiError(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": status, "message": http.StatusText(status)},
	})
}

func TestCreateTask(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":     "remote-1",
			"title":  gotBody["title"],
			"notes":  gotBody["notes"],
			"status": "needsAction",
		})
	})

	created, err := client.CreateTask(context.Background(), "@default", service.Task{
		Title: "Buy milk",
		Notes: "exported",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/tasks/v1/lists/@default/tasks" {
		t.Errorf("expected insert path, got %q", gotPath)
	}
	if gotBody["title"] != "Buy milk" {
		t.Errorf("expected title in request body, got %v", gotBody)
	}
	if created.ID != "remote-1" || created.Title != "Buy milk" || created.Status != service.StatusNeedsAction {
		t.Errorf("unexpected created task: %+v", created)
	}
}

func TestCompleteTask_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusNotFound)
	})

	err := client.CompleteTask(context.Background(), "@default", "missing")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultList_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusUnauthorized)
	})

	_, err := client.DefaultList(context.Background())
	if !errors.Is(err, service.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestResolveList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"id": "l1", "title": "Work"},
				{"id": "l2", "title": "Home"},
				{"id": "l3", "title": "home "},
			},
		})
	})

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr error
	}{
		{"exact", "Work", "l1", nil},
		{"case and space", "  work ", "l1", nil},
		{"ambiguous", "Home", "", service.ErrAmbiguous},
		{"missing", "Errands", "", service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := client.ResolveList(context.Background(), tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if list.ID != tt.wantID {
				t.Errorf("expected list %s, got %s", tt.wantID, list.ID)
			}
		})
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	_, err := googletasks.New(context.Background(), cfg)
	if !errors.Is(err, service.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}
