package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateTaskSendsExpectedRequest(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Task{ID: "abc", Name: "Fix login bug", URL: "https://app.clickup.com/t/abc"})
	}))
	defer srv.Close()

	c := NewClient(Config{Token: "pk_token", BaseURL: srv.URL})
	due := int64(1788000000000)
	prio := 2
	task, err := c.CreateTask(context.Background(), CreateTaskRequest{
		ListID:      "901",
		Name:        "Fix login bug",
		Description: "broken since Tuesday",
		DueDateMS:   &due,
		Priority:    &prio,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if gotPath != "/api/v2/list/901/task" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "pk_token" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotBody["name"] != "Fix login bug" || gotBody["description"] != "broken since Tuesday" {
		t.Fatalf("body = %v", gotBody)
	}
	if gotBody["due_date"] != float64(due) || gotBody["priority"] != float64(prio) {
		t.Fatalf("body = %v", gotBody)
	}
	if task.ID != "abc" || task.Name != "Fix login bug" {
		t.Fatalf("task = %+v", task)
	}
}

func TestCreateTaskOmitsAbsentFields(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Task{ID: "x", Name: "Buy milk"})
	}))
	defer srv.Close()

	c := NewClient(Config{Token: "tok", BaseURL: srv.URL})
	if _, err := c.CreateTask(context.Background(), CreateTaskRequest{ListID: "1", Name: "Buy milk"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	for _, key := range []string{"due_date", "priority", "description"} {
		if _, present := gotBody[key]; present {
			t.Fatalf("field %q must be omitted when absent: %v", key, gotBody)
		}
	}
}

func TestCreateTaskSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err":"Team not authorized","ECODE":"OAUTH_027"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Token: "bad", BaseURL: srv.URL})
	_, err := c.CreateTask(context.Background(), CreateTaskRequest{ListID: "1", Name: "x"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Team not authorized" || apiErr.ECode != "OAUTH_027" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestCreateTaskEmptyListID(t *testing.T) {
	c := NewClient(Config{Token: "tok"})
	if _, err := c.CreateTask(context.Background(), CreateTaskRequest{Name: "x"}); err == nil {
		t.Fatal("expected error for empty list id")
	}
}

func TestCreateTaskHonorsContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Config{Token: "tok", BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.CreateTask(ctx, CreateTaskRequest{ListID: "1", Name: "x"}); err == nil {
		t.Fatal("expected timeout error")
	}
}
