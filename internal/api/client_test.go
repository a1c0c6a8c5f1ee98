package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClientAttachesBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("Expected a request id header")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok-1"))
	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}

func TestClientOmitsEmptyToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want unset", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens(""))
	if _, err := client.Do(context.Background(), http.MethodGet, "/projects", nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}

func TestClientNetworkError(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.Do(context.Background(), http.MethodGet, "/projects", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError, got %v", err)
	}
}

func TestClientServerErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message field", 403, `{"message": "sin permiso"}`, "sin permiso"},
		{"validation errors", 422, `{"errors": [{"msg": "email requerido"}, {"msg": "password corto"}]}`, "email requerido, password corto"},
		{"unparseable body", 500, `<html>oops</html>`, "request failed"},
		{"empty body", 404, ``, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil)
			_, err := client.Do(context.Background(), http.MethodGet, "/x", nil)

			var serverErr *ServerError
			if !errors.As(err, &serverErr) {
				t.Fatalf("Expected ServerError, got %v", err)
			}
			if serverErr.Status != tt.status {
				t.Errorf("status = %d, want %d", serverErr.Status, tt.status)
			}
			if serverErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", serverErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClientInvalidResponseBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	var out []Project
	err := client.Get(context.Background(), "/projects", &out)
	if !errors.Is(err, ErrInvalidServerResponse) {
		t.Fatalf("Expected ErrInvalidServerResponse, got %v", err)
	}
}

// The backend wraps most responses in {"data": ...} but not all; both decode
// into the same value.
func TestClientUnwrapsDataEnvelope(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"data": [{"id_proyecto": 1, "nombre": "P"}]}`,
		`[{"id_proyecto": 1, "nombre": "P"}]`,
	}

	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewClient(srv.URL, nil)
		projects, err := client.ListProjects(context.Background())
		srv.Close()
		if err != nil {
			t.Fatalf("ListProjects failed for %s: %v", body, err)
		}
		if len(projects) != 1 || projects[0].ID != 1 || projects[0].Name != "P" {
			t.Errorf("decoded %+v from %s", projects, body)
		}
	}
}

func TestUpdateTaskStatusBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/7/status" {
			t.Errorf("%s %s, want PUT /tasks/7/status", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["estado"] != "completada" {
			t.Errorf("estado = %q", body["estado"])
		}
		w.Write([]byte(`{"data": {"id_tarea": 7, "estado": "completada"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	task, err := client.UpdateTaskStatus(context.Background(), 7, "completada")
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if task.Status != "completada" {
		t.Errorf("status = %q", task.Status)
	}
}

func TestRemoveMemberSendsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		if body["id_usuario"] != 9 {
			t.Errorf("id_usuario = %d, want 9", body["id_usuario"])
		}
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if err := client.RemoveMember(context.Background(), 4, 9); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
}

func TestSearchUsersEscapesTerm(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "ana maría" {
			t.Errorf("search = %q, want ana maría", got)
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.SearchUsers(context.Background(), 4, "ana maría"); err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(&ServerError{Status: 404, Message: "no such project"}) {
		t.Error("Expected 404 to be not-found")
	}
	if IsNotFound(&ServerError{Status: 500, Message: "boom"}) {
		t.Error("Expected 500 not to be not-found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("Expected plain error not to be not-found")
	}
}

func TestProjectMember(t *testing.T) {
	t.Parallel()

	p := &Project{Members: []ProjectMember{
		{UserID: 1, ProjectRole: "creador"},
		{UserID: 2, ProjectRole: "colaborador"},
	}}
	if m := p.Member(2); m == nil || m.ProjectRole != "colaborador" {
		t.Errorf("Member(2) = %+v", m)
	}
	if m := p.Member(99); m != nil {
		t.Errorf("Member(99) = %+v, want nil", m)
	}
}
