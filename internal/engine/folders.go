package engine

import (
	"maps"

	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/porter"
	"github.com/promptdrive/pd/internal/state"
)

// CreateFolder validates the name, inserts the folder remotely and merges
// the confirmed record into state.
func (e *Engine) CreateFolder(name string) Result {
	if err := model.ValidateName(name); err != nil {
		return fail(toastFolderError, err.Error())
	}

	s := e.container.State()
	folder, err := e.api.CreateFolder(api.CreateFolderParams{
		UserID: s.User.ID,
		Name:   trimmed(name),
	})
	if err != nil {
		return e.remoteFailure(err, toastFolderDuplicate, toastFolderError)
	}

	e.container.Set(func(s state.AppState) state.AppState {
		folders := maps.Clone(s.Data.Folders)
		folders[folder.ID] = *folder
		folderPrompts := maps.Clone(s.Data.FolderPrompts)
		folderPrompts[folder.ID] = []string{}
		s.Data.Folders = folders
		s.Data.FolderPrompts = folderPrompts
		return s
	})

	e.CloseDialog(state.DialogFolder)
	return ok(toastFolderCreated)
}

// UpdateFolder renames a folder. The committed name and updated_at come from
// the server's response, keeping server and client identical.
func (e *Engine) UpdateFolder(folderID, newName string) Result {
	if err := model.ValidateName(newName); err != nil {
		return fail(toastFolderError, err.Error())
	}
	if _, found := e.container.FolderByID(folderID); !found {
		return fail(toastFolderError, "folder not found")
	}

	folder, err := e.api.UpdateFolder(api.UpdateFolderParams{
		FolderID: folderID,
		Name:     trimmed(newName),
	})
	if err != nil {
		return e.remoteFailure(err, toastFolderDuplicate, toastFolderError)
	}

	e.container.Set(func(s state.AppState) state.AppState {
		folders := maps.Clone(s.Data.Folders)
		folders[folderID] = *folder
		s.Data.Folders = folders
		return s
	})

	e.CloseDialog(state.DialogEditFolder)
	return ok(toastFolderUpdated)
}

// DeleteFolder removes a folder after the caller re-typed its exact name.
// The folder, all its prompts and its index entry go in one state commit.
func (e *Engine) DeleteFolder(folderID, confirmName string) Result {
	folder, found := e.container.FolderByID(folderID)
	if !found {
		return fail(toastFolderDeleteError, "folder not found")
	}
	if confirmName != folder.Name {
		return fail(toastFolderNameMismatch, "confirmation name mismatch")
	}

	if err := e.api.DeleteFolder(folderID); err != nil {
		return e.remoteFailure(err, toastFolderDeleteError, toastFolderDeleteError)
	}

	e.container.Set(func(s state.AppState) state.AppState {
		folders := maps.Clone(s.Data.Folders)
		delete(folders, folderID)

		prompts := maps.Clone(s.Data.Prompts)
		for _, promptID := range s.Data.FolderPrompts[folderID] {
			delete(prompts, promptID)
		}

		folderPrompts := maps.Clone(s.Data.FolderPrompts)
		delete(folderPrompts, folderID)

		s.Data = state.DataState{
			Folders:       folders,
			Prompts:       prompts,
			FolderPrompts: folderPrompts,
		}
		return s
	})

	e.CloseDialog(state.DialogDeleteFolder)
	return ok(toastFolderDeleted)
}

// ExportFolder serializes a folder and its prompts to a JSON download.
// Premium only; free-plan callers get an upsell refusal.
func (e *Engine) ExportFolder(folderID string) Result {
	if e.container.IsFreePlan() {
		return Result{Toast: toastPremiumFeature, Reason: "premium required", Upsell: true}
	}

	folder, found := e.container.FolderByID(folderID)
	if !found {
		return fail(toastExportError, "folder not found")
	}

	doc := porter.Build(folder, e.container.PromptsByFolder(folderID))
	data, err := doc.Encode()
	if err != nil {
		return fail(toastExportError, err.Error())
	}

	filename := porter.Filename(folder.Name, e.now())
	if _, err := e.saver.Save(data, filename); err != nil {
		return fail(toastExportError, err.Error())
	}

	return ok(toastExportSuccess)
}

// ImportFolder parses an export document and merges it as one state commit.
// Colliding ids get fresh UUIDs; colliding names get the lowest free "(n)"
// suffix, with imported prompts also checked against each other. A parse or
// shape error aborts before any mutation.
func (e *Engine) ImportFolder(jsonText string) Result {
	if e.container.IsFreePlan() {
		return Result{Toast: toastPremiumFeature, Reason: "premium required", Upsell: true}
	}

	doc, err := porter.Parse([]byte(jsonText))
	if err != nil {
		return fail(toastImportError, err.Error())
	}

	s := e.container.State()
	now := e.now()

	folderNames := make([]string, 0, len(s.Data.Folders))
	for _, f := range s.Data.Folders {
		folderNames = append(folderNames, f.Name)
	}
	promptNames := make([]string, 0, len(s.Data.Prompts))
	for _, p := range s.Data.Prompts {
		promptNames = append(promptNames, p.Name)
	}

	folderID := doc.Folder.ID
	if _, taken := s.Data.Folders[folderID]; taken || folderID == "" {
		folderID = model.GenerateUUID()
	}

	folder := model.Folder{
		ID:        folderID,
		Name:      model.UniqueName(doc.Folder.Name, folderNames),
		CreatedAt: doc.Folder.CreatedAt,
		UpdatedAt: now,
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}

	takenIDs := make(map[string]bool, len(s.Data.Prompts))
	for id := range s.Data.Prompts {
		takenIDs[id] = true
	}

	imported := make([]model.Prompt, 0, len(doc.Prompts))
	for _, p := range doc.Prompts {
		promptID := p.ID
		if takenIDs[promptID] || promptID == "" {
			promptID = model.GenerateUUID()
		}
		takenIDs[promptID] = true

		name := model.UniqueName(p.Name, promptNames)
		promptNames = append(promptNames, name)

		prompt := model.Prompt{
			ID:        promptID,
			FolderID:  folderID,
			Name:      name,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			UpdatedAt: now,
		}
		if prompt.CreatedAt.IsZero() {
			prompt.CreatedAt = now
		}
		imported = append(imported, prompt)
	}

	e.container.Set(func(s state.AppState) state.AppState {
		folders := maps.Clone(s.Data.Folders)
		folders[folderID] = folder

		prompts := maps.Clone(s.Data.Prompts)
		folderPrompts := maps.Clone(s.Data.FolderPrompts)
		folderPrompts[folderID] = []string{}
		for _, p := range imported {
			prompts[p.ID] = p
			folderPrompts[folderID] = append(folderPrompts[folderID], p.ID)
		}

		s.Data = state.DataState{
			Folders:       folders,
			Prompts:       prompts,
			FolderPrompts: folderPrompts,
		}
		return s
	})

	e.CloseDialog(state.DialogImport)
	return ok(toastImportSuccess)
}
