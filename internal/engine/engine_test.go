package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/engine"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/state"
)

// fakeAPI implements engine.API with overridable behavior and call counting.
type fakeAPI struct {
	calls map[string]int

	loginErr  error
	signupErr error

	bundle    *api.UserBundle
	bundleErr error

	createFolderResult *model.Folder
	createFolderErr    error
	updateFolderResult *model.Folder
	updateFolderErr    error
	deleteFolderErr    error

	createPromptResult *model.Prompt
	createPromptErr    error
	updatePromptResult *model.Prompt
	updatePromptErr    error
	deletePromptErr    error

	licenseExpiry *time.Time
	licenseErr    error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) Login(email, password string) error {
	f.calls["Login"]++
	return f.loginErr
}

func (f *fakeAPI) Signup(email, password, name string) error {
	f.calls["Signup"]++
	return f.signupErr
}

func (f *fakeAPI) Logout() error {
	f.calls["Logout"]++
	return nil
}

func (f *fakeAPI) FetchUserBundle() (*api.UserBundle, error) {
	f.calls["FetchUserBundle"]++
	if f.bundleErr != nil {
		return nil, f.bundleErr
	}
	if f.bundle != nil {
		return f.bundle, nil
	}
	return &api.UserBundle{
		User:    api.Account{ID: "u1", Name: "Ada"},
		Profile: model.Profile{Plan: model.PlanFree},
	}, nil
}

func (f *fakeAPI) CreateFolder(params api.CreateFolderParams) (*model.Folder, error) {
	f.calls["CreateFolder"]++
	if f.createFolderErr != nil {
		return nil, f.createFolderErr
	}
	if f.createFolderResult != nil {
		return f.createFolderResult, nil
	}
	folder := model.NewFolder(model.NewFolderParams{Name: params.Name})
	return &folder, nil
}

func (f *fakeAPI) UpdateFolder(params api.UpdateFolderParams) (*model.Folder, error) {
	f.calls["UpdateFolder"]++
	if f.updateFolderErr != nil {
		return nil, f.updateFolderErr
	}
	if f.updateFolderResult != nil {
		return f.updateFolderResult, nil
	}
	return &model.Folder{ID: params.FolderID, Name: params.Name, UpdatedAt: time.Now()}, nil
}

func (f *fakeAPI) DeleteFolder(folderID string) error {
	f.calls["DeleteFolder"]++
	return f.deleteFolderErr
}

func (f *fakeAPI) CreatePrompt(params api.CreatePromptParams) (*model.Prompt, error) {
	f.calls["CreatePrompt"]++
	if f.createPromptErr != nil {
		return nil, f.createPromptErr
	}
	if f.createPromptResult != nil {
		return f.createPromptResult, nil
	}
	prompt := model.NewPrompt(model.NewPromptParams{
		FolderID: params.FolderID,
		Name:     params.Name,
		Content:  params.Content,
	})
	return &prompt, nil
}

func (f *fakeAPI) UpdatePrompt(params api.UpdatePromptParams) (*model.Prompt, error) {
	f.calls["UpdatePrompt"]++
	if f.updatePromptErr != nil {
		return nil, f.updatePromptErr
	}
	if f.updatePromptResult != nil {
		return f.updatePromptResult, nil
	}
	return &model.Prompt{
		ID:       params.PromptID,
		FolderID: params.FolderID,
		Name:     params.Name,
		Content:  params.Content,
	}, nil
}

func (f *fakeAPI) DeletePrompt(promptID string) error {
	f.calls["DeletePrompt"]++
	return f.deletePromptErr
}

func (f *fakeAPI) ActivateLicense(params api.ActivateLicenseParams) (*time.Time, error) {
	f.calls["ActivateLicense"]++
	if f.licenseErr != nil {
		return nil, f.licenseErr
	}
	return f.licenseExpiry, nil
}

type fakeClipboard struct {
	written string
	err     error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = text
	return nil
}

type fakeSaver struct {
	filename string
	data     []byte
	err      error
}

func (f *fakeSaver) Save(data []byte, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.data = data
	f.filename = filename
	return "/tmp/" + filename, nil
}

type harness struct {
	engine       *engine.Engine
	container    *state.Container
	api          *fakeAPI
	clipboard    *fakeClipboard
	saver        *fakeSaver
	unauthorized int
	now          time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		container: state.NewContainer(),
		api:       newFakeAPI(),
		clipboard: &fakeClipboard{},
		saver:     &fakeSaver{},
		now:       time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	h.engine = engine.New(engine.Params{
		Container:      h.container,
		API:            h.api,
		Clipboard:      h.clipboard,
		Saver:          h.saver,
		OnUnauthorized: func() { h.unauthorized++ },
		Now:            func() time.Time { return h.now },
	})
	return h
}

// seed installs a user plus folders/prompts directly into the container.
func (h *harness) seed(plan model.Plan, folders []model.Folder, prompts []model.Prompt) {
	folderMap := map[string]model.Folder{}
	folderPrompts := map[string][]string{}
	for _, f := range folders {
		folderMap[f.ID] = f
		folderPrompts[f.ID] = []string{}
	}
	promptMap := map[string]model.Prompt{}
	for _, p := range prompts {
		promptMap[p.ID] = p
		folderPrompts[p.FolderID] = append(folderPrompts[p.FolderID], p.ID)
	}

	user := model.User{ID: "u1", Name: "Ada", Plan: plan}
	data := state.DataState{Folders: folderMap, Prompts: promptMap, FolderPrompts: folderPrompts}
	h.container.Apply(state.Patch{User: &user, Data: &data})
}

// checkIndexInvariant verifies the folder-to-prompt index: every listed id
// exists with a matching FolderID, and every prompt appears exactly once
// under its own folder.
func checkIndexInvariant(t *testing.T, c *state.Container) {
	t.Helper()
	s := c.State()

	seen := map[string]int{}
	for folderID, ids := range s.Data.FolderPrompts {
		if _, ok := s.Data.Folders[folderID]; !ok && len(ids) > 0 {
			t.Errorf("index entry for unknown folder %q", folderID)
		}
		for _, id := range ids {
			prompt, ok := s.Data.Prompts[id]
			if !ok {
				t.Errorf("index lists unknown prompt %q under folder %q", id, folderID)
				continue
			}
			if prompt.FolderID != folderID {
				t.Errorf("prompt %q indexed under %q but has FolderID %q", id, folderID, prompt.FolderID)
			}
			seen[id]++
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("prompt %q appears %d times in the index", id, count)
		}
	}
	for id := range s.Data.Prompts {
		if seen[id] != 1 {
			t.Errorf("prompt %q missing from the index", id)
		}
	}
}

func TestInitialize_BuildsStateTree(t *testing.T) {
	h := newHarness(t)
	h.api.bundle = &api.UserBundle{
		User:    api.Account{ID: "u1", Name: "Ada"},
		Profile: model.Profile{Plan: model.PlanPremium},
		Folders: []api.BundleFolder{
			{
				Folder: model.Folder{ID: "f1", Name: "Work"},
				Prompts: []model.Prompt{
					{ID: "p1", Name: "Standup", Content: "notes"},
				},
			},
		},
	}

	if err := h.engine.Initialize(); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	s := h.container.State()
	if s.User.ID != "u1" || s.User.Plan != model.PlanPremium {
		t.Errorf("unexpected user: %+v", s.User)
	}
	if s.UI.Loading {
		t.Error("loading flag still set after initialize")
	}
	if s.Data.Prompts["p1"].FolderID != "f1" {
		t.Error("prompt FolderID not normalized from its owning folder")
	}
	checkIndexInvariant(t, h.container)
}

func TestInitialize_UnauthorizedTriggersHook(t *testing.T) {
	h := newHarness(t)
	h.api.bundleErr = api.ErrUnauthorized

	if err := h.engine.Initialize(); err == nil {
		t.Fatal("expected error")
	}

	if h.unauthorized != 1 {
		t.Errorf("unauthorized hook called %d times, want 1", h.unauthorized)
	}
	s := h.container.State()
	if s.UI.Loading {
		t.Error("loading flag still set after failure")
	}
	if s.UI.Err == "" {
		t.Error("expected UI error to be recorded")
	}
}

func TestLogin_FailureReturnsToast(t *testing.T) {
	h := newHarness(t)
	h.api.loginErr = errors.New("bad credentials")

	result := h.engine.Login("a@b.c", "wrong")

	if result.OK {
		t.Fatal("expected failure")
	}
	if h.api.calls["FetchUserBundle"] != 0 {
		t.Error("bundle must not be fetched after failed login")
	}
}

func TestLogin_SuccessInitializes(t *testing.T) {
	h := newHarness(t)

	result := h.engine.Login("a@b.c", "secret")

	if !result.OK {
		t.Fatalf("expected success, got %+v", result)
	}
	if h.api.calls["FetchUserBundle"] != 1 {
		t.Error("expected bundle fetch after login")
	}
	if h.container.State().User.ID != "u1" {
		t.Error("state not initialized after login")
	}
}

func TestLogout_ResetsState(t *testing.T) {
	h := newHarness(t)
	h.seed(model.PlanPremium, []model.Folder{{ID: "f1", Name: "Work"}}, nil)

	h.engine.Logout()

	s := h.container.State()
	if len(s.Data.Folders) != 0 || s.User.ID != "" {
		t.Error("state not reset after logout")
	}
	if h.api.calls["Logout"] != 1 {
		t.Error("expected best-effort logout call")
	}
}
