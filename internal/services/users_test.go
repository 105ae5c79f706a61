package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/WildTrack-Africa/field_client/internal/domain"
)

func TestUsersListAndCreate(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody domain.UserInput
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		if r.Method == http.MethodPost {
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode body: %v", err)
			}
			writeJSON(t, w, domain.User{ID: 2, Username: "scout"})
			return
		}
		writeJSON(t, w, []domain.User{{ID: 1, Username: "admin", Role: "admin"}})
	}))
	svc := NewUsers(api)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() err = %v", err)
	}
	if len(list) != 1 || list[0].Role != "admin" {
		t.Fatalf("list=%+v", list)
	}
	if gotPath != "/users" {
		t.Fatalf("path=%q want /users", gotPath)
	}

	created, err := svc.Create(context.Background(), domain.UserInput{
		Username: "scout",
		Email:    "scout@example.org",
		Password: "pw",
		Role:     "observer",
	})
	if err != nil {
		t.Fatalf("Create() err = %v", err)
	}
	if created.ID != 2 {
		t.Fatalf("ID=%d want 2", created.ID)
	}
	if gotMethod != http.MethodPost || gotBody.Username != "scout" {
		t.Fatalf("method=%q body=%+v", gotMethod, gotBody)
	}
}

func TestUsersUpdateTogglesActive(t *testing.T) {
	var gotBody map[string]any
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/5" || r.Method != http.MethodPut {
			t.Errorf("%s %s want PUT /users/5", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeJSON(t, w, domain.User{ID: 5, IsActive: false})
	}))

	inactive := false
	if _, err := NewUsers(api).Update(context.Background(), 5, domain.UserInput{IsActive: &inactive}); err != nil {
		t.Fatalf("Update() err = %v", err)
	}
	if v, present := gotBody["is_active"]; !present || v != false {
		t.Fatalf("is_active=%v want explicit false", v)
	}
	// Unset credential fields must stay off the wire.
	if _, present := gotBody["password"]; present {
		t.Fatal("empty password must be omitted")
	}
}

func TestActivitiesListFilters(t *testing.T) {
	var gotQuery url.Values
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeJSON(t, w, []domain.Activity{{ID: 1, Title: "Patrol"}})
	}))

	list, err := NewActivities(api).List(context.Background(), Filters{
		"species_id":    "3",
		"activity_type": "",
	})
	if err != nil {
		t.Fatalf("List() err = %v", err)
	}
	if len(list) != 1 || list[0].Title != "Patrol" {
		t.Fatalf("list=%+v", list)
	}
	if gotQuery.Get("species_id") != "3" {
		t.Fatalf("query=%q", gotQuery.Encode())
	}
	if _, present := gotQuery["activity_type"]; present {
		t.Fatal("empty filter must be dropped")
	}
}

func TestUploadDefaultsType(t *testing.T) {
	var gotType, gotFilename string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		gotType = r.FormValue("type")
		if _, header, err := r.FormFile("file"); err != nil {
			t.Errorf("FormFile: %v", err)
		} else {
			gotFilename = header.Filename
		}
		writeJSON(t, w, domain.UploadResult{Filename: "photo.jpg"})
	}))

	result, err := NewUpload(api).File(context.Background(), "photo.jpg", []byte("jpeg"), "")
	if err != nil {
		t.Fatalf("File() err = %v", err)
	}
	if gotType != "observation" {
		t.Fatalf("type=%q want observation default", gotType)
	}
	if gotFilename != "photo.jpg" || result.Filename != "photo.jpg" {
		t.Fatalf("filename=%q result=%+v", gotFilename, result)
	}
}
