// Package engine orchestrates user intents: validate locally, call the
// backend, reconcile the state tree with the confirmed result. All mutations
// happen strictly after remote confirmation, so failures never need rollback.
package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/state"
)

// API is the backend surface the engine consumes. *api.Client implements it.
type API interface {
	Login(email, password string) error
	Signup(email, password, name string) error
	Logout() error
	FetchUserBundle() (*api.UserBundle, error)
	CreateFolder(params api.CreateFolderParams) (*model.Folder, error)
	UpdateFolder(params api.UpdateFolderParams) (*model.Folder, error)
	DeleteFolder(folderID string) error
	CreatePrompt(params api.CreatePromptParams) (*model.Prompt, error)
	UpdatePrompt(params api.UpdatePromptParams) (*model.Prompt, error)
	DeletePrompt(promptID string) error
	ActivateLicense(params api.ActivateLicenseParams) (*time.Time, error)
}

// Clipboard writes prompt content to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// FileSaver persists an export document and returns the written path.
type FileSaver interface {
	Save(data []byte, filename string) (string, error)
}

// DownloadsSaver writes exports to a fixed directory.
type DownloadsSaver struct {
	Dir string
}

// Save writes the file, creating the directory if needed.
func (s DownloadsSaver) Save(data []byte, filename string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Result is the uniform outcome of every operation. The engine decides and
// commits state; the view performs the toast and upsell effects.
type Result struct {
	OK     bool
	Reason string // machine-facing failure reason, empty on success
	Code   int    // HTTP-ish status for remote failures, 0 otherwise
	Toast  string // user-facing notification to show
	Upsell bool   // caller should surface the upgrade page
}

func ok(toast string) Result {
	return Result{OK: true, Toast: toast}
}

func fail(toast, reason string) Result {
	return Result{Toast: toast, Reason: reason}
}

// Engine is the sync orchestrator. One instance per session.
type Engine struct {
	container *state.Container
	api       API
	clipboard Clipboard
	saver     FileSaver

	// onUnauthorized runs whenever the backend reports the session token
	// invalid. The composition root clears the token and forces re-auth.
	onUnauthorized func()

	now func() time.Time
}

// Params holds dependencies for creating an Engine.
type Params struct {
	Container      *state.Container
	API            API
	Clipboard      Clipboard
	Saver          FileSaver
	OnUnauthorized func()
	Now            func() time.Time // optional, defaults to time.Now
}

// New creates an Engine.
func New(params Params) *Engine {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	onUnauthorized := params.OnUnauthorized
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}
	return &Engine{
		container:      params.Container,
		api:            params.API,
		clipboard:      params.Clipboard,
		saver:          params.Saver,
		onUnauthorized: onUnauthorized,
		now:            now,
	}
}

// Container exposes the state container for subscription and selectors.
func (e *Engine) Container() *state.Container {
	return e.container
}

// Initialize performs the aggregate initial read and builds the whole state
// tree from it.
func (e *Engine) Initialize() error {
	e.container.Set(func(s state.AppState) state.AppState {
		s.UI.Loading = true
		return s
	})

	bundle, err := e.api.FetchUserBundle()
	if err != nil {
		e.container.Set(func(s state.AppState) state.AppState {
			s.UI.Loading = false
			s.UI.Err = err.Error()
			return s
		})
		if errors.Is(err, api.ErrUnauthorized) {
			e.onUnauthorized()
		}
		return err
	}

	folders := map[string]model.Folder{}
	prompts := map[string]model.Prompt{}
	folderPrompts := map[string][]string{}

	for _, f := range bundle.Folders {
		folders[f.ID] = f.Folder
		folderPrompts[f.ID] = []string{}
		for _, p := range f.Prompts {
			p.FolderID = f.ID
			prompts[p.ID] = p
			folderPrompts[f.ID] = append(folderPrompts[f.ID], p.ID)
		}
	}

	e.container.Set(func(s state.AppState) state.AppState {
		s.User.ID = bundle.User.ID
		s.User.Name = bundle.User.Name
		s.User.Plan = bundle.Profile.Plan
		s.User.UpdatedAt = e.now()
		profile := bundle.Profile
		s.Profile = &profile
		s.Subscription = bundle.Subscription
		s.Data = state.DataState{
			Folders:       folders,
			Prompts:       prompts,
			FolderPrompts: folderPrompts,
		}
		s.UI.Loading = false
		s.UI.Err = ""
		return s
	})
	return nil
}

// remoteFailure maps an API error onto a Result. duplicateToast is shown for
// 409 conflicts; genericToast for everything else.
func (e *Engine) remoteFailure(err error, duplicateToast, genericToast string) Result {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		e.onUnauthorized()
		return Result{Code: 401, Toast: toastSessionExpired, Reason: err.Error()}
	case errors.Is(err, api.ErrConflict):
		return Result{Code: 409, Toast: duplicateToast, Reason: err.Error()}
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case strings.Contains(statusErr.Message, "Free plan limit"),
			strings.Contains(statusErr.Message, "limit reached"):
			return Result{Code: statusErr.Code, Toast: toastLimitReached, Reason: statusErr.Message, Upsell: true}
		case strings.Contains(statusErr.Message, "Folder does not belong"):
			return Result{Code: statusErr.Code, Toast: toastPromptFolderError, Reason: statusErr.Message}
		default:
			return Result{Code: statusErr.Code, Toast: genericToast, Reason: statusErr.Message}
		}
	}

	return fail(genericToast, err.Error())
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
