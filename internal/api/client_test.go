package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/config"
	"github.com/promptdrive/pd/internal/storage"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := storage.NewJSONStorage(filepath.Join(t.TempDir(), "session.json"))
	if token != "" {
		if err := store.Set(config.AccessTokenKey, token); err != nil {
			t.Fatalf("failed to seed token: %v", err)
		}
	}

	cfg := &config.Config{APIURL: server.URL, AnonKey: "anon-key"}
	return api.NewClient(cfg, store)
}

func TestLogin_StoresToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Error("missing apikey header")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})

	client := newTestClient(t, handler, "")

	if err := client.Login("a@b.c", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := client.Token()
	if err != nil {
		t.Fatalf("token not stored: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("token = %q, want %q", token, "tok-1")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	})

	client := newTestClient(t, handler, "")

	err := client.Login("a@b.c", "wrong")
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Message != "Invalid login credentials" {
		t.Errorf("message = %q", statusErr.Message)
	}
}

func TestCreateFolder_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Error("missing bearer token")
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Error("missing Prefer header")
		}
		_, _ = w.Write([]byte(`[{"id":"f1","name":"Marketing","created_at":"2024-01-02T03:04:05Z","updated_at":"2024-01-02T03:04:05Z"}]`))
	})

	client := newTestClient(t, handler, "tok-1")

	folder, err := client.CreateFolder(api.CreateFolderParams{UserID: "u1", Name: "Marketing"})
	if err != nil {
		t.Fatalf("create folder failed: %v", err)
	}
	if folder.ID != "f1" || folder.Name != "Marketing" {
		t.Errorf("unexpected folder: %+v", folder)
	}
}

func TestCreateFolder_Conflict(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	client := newTestClient(t, handler, "tok-1")

	_, err := client.CreateFolder(api.CreateFolderParams{UserID: "u1", Name: "Marketing"})
	if !errors.Is(err, api.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCreateFolder_Unauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	client := newTestClient(t, handler, "tok-1")

	_, err := client.CreateFolder(api.CreateFolderParams{UserID: "u1", Name: "Marketing"})
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateFolder_MissingToken(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client := newTestClient(t, handler, "")

	_, err := client.CreateFolder(api.CreateFolderParams{UserID: "u1", Name: "Marketing"})
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if called {
		t.Error("no request should be sent without a token")
	}
}

func TestCreatePrompt_ServerErrorMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Free plan limit reached"}`))
	})

	client := newTestClient(t, handler, "tok-1")

	_, err := client.CreatePrompt(api.CreatePromptParams{UserID: "u1", FolderID: "f1", Name: "P", Content: "c"})
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Message != "Free plan limit reached" {
		t.Errorf("message = %q", statusErr.Message)
	}
}

func TestUpdatePrompt_FolderIDOnlyWhenProvided(t *testing.T) {
	var captured map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = map[string]string{}
		_ = json.Unmarshal(body, &captured)
		_, _ = w.Write([]byte(`[{"id":"p1","folder_id":"f1","name":"N","content":"c","created_at":"2024-01-02T03:04:05Z","updated_at":"2024-01-02T03:04:05Z"}]`))
	})

	client := newTestClient(t, handler, "tok-1")

	if _, err := client.UpdatePrompt(api.UpdatePromptParams{PromptID: "p1", Name: "N", Content: "c"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, ok := captured["folder_id"]; ok {
		t.Error("folder_id must be omitted when no move is requested")
	}

	if _, err := client.UpdatePrompt(api.UpdatePromptParams{PromptID: "p1", FolderID: "f2", Name: "N", Content: "c"}); err != nil {
		t.Fatalf("update with move failed: %v", err)
	}
	if captured["folder_id"] != "f2" {
		t.Errorf("folder_id = %q, want %q", captured["folder_id"], "f2")
	}
}

func TestFetchUserBundle(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/v1/user":
			_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.c","user_metadata":{"full_name":"Ada"}}`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/profiles"):
			_, _ = w.Write([]byte(`[{"plan":"premium","stripe_customer_id":"cus_1"}]`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/subscriptions"):
			_, _ = w.Write([]byte(`[{"id":"s1","status":"active","current_period_start":"2024-01-01T00:00:00Z","current_period_end":"2024-02-01T00:00:00Z","cancel_at_period_end":false}]`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/folders"):
			_, _ = w.Write([]byte(`[{"id":"f1","name":"Work","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z","prompts":[{"id":"p1","folder_id":"f1","name":"Hello","content":"hi","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]}]`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	})

	client := newTestClient(t, handler, "tok-1")

	bundle, err := client.FetchUserBundle()
	if err != nil {
		t.Fatalf("fetch bundle failed: %v", err)
	}

	if bundle.User.ID != "u1" || bundle.User.Name != "Ada" {
		t.Errorf("unexpected account: %+v", bundle.User)
	}
	if bundle.Profile.Plan != "premium" {
		t.Errorf("plan = %q, want premium", bundle.Profile.Plan)
	}
	if bundle.Subscription == nil || bundle.Subscription.Status != "active" {
		t.Errorf("unexpected subscription: %+v", bundle.Subscription)
	}
	if len(bundle.Folders) != 1 || len(bundle.Folders[0].Prompts) != 1 {
		t.Fatalf("unexpected folders: %+v", bundle.Folders)
	}
	if bundle.Folders[0].Prompts[0].Name != "Hello" {
		t.Errorf("prompt name = %q", bundle.Folders[0].Prompts[0].Name)
	}
}

func TestFetchUserBundle_ExpiredToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := newTestClient(t, handler, "stale")

	_, err := client.FetchUserBundle()
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
