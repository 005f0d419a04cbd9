package engine

import (
	"maps"
	"slices"

	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/state"
)

// CreatePrompt inserts a prompt into a folder. The free-tier quota is checked
// before anything else; at the ceiling no remote call is made and the caller
// is signalled to present the upgrade action.
func (e *Engine) CreatePrompt(folderID, name, content string) Result {
	if !e.container.CanCreatePrompt() {
		return Result{Toast: toastLimitReached, Reason: "free plan limit reached", Upsell: true}
	}

	if err := model.ValidateName(name); err != nil {
		return fail(toastPromptError, err.Error())
	}
	if trimmed(content) == "" {
		return fail(toastPromptError, "content must not be empty")
	}

	s := e.container.State()
	prompt, err := e.api.CreatePrompt(api.CreatePromptParams{
		UserID:   s.User.ID,
		FolderID: folderID,
		Name:     trimmed(name),
		Content:  trimmed(content),
	})
	if err != nil {
		return e.remoteFailure(err, toastPromptDuplicate, toastPromptError)
	}

	if prompt.FolderID == "" {
		prompt.FolderID = folderID
	}

	e.container.Set(func(s state.AppState) state.AppState {
		prompts := maps.Clone(s.Data.Prompts)
		prompts[prompt.ID] = *prompt

		folderPrompts := maps.Clone(s.Data.FolderPrompts)
		ids := slices.Clone(folderPrompts[prompt.FolderID])
		folderPrompts[prompt.FolderID] = append(ids, prompt.ID)

		s.Data.Prompts = prompts
		s.Data.FolderPrompts = folderPrompts
		return s
	})

	e.CloseDialog(state.DialogPrompt)
	return ok(toastPromptCreated)
}

// UpdatePrompt edits a prompt, optionally moving it to another folder when
// newFolderID is non-empty and differs from the current one. On a move the
// old folder's list loses the id and the new folder's list gains it in the
// same commit.
func (e *Engine) UpdatePrompt(promptID, newFolderID, name, content string) Result {
	if err := model.ValidateName(name); err != nil {
		return fail(toastPromptError, err.Error())
	}
	if trimmed(content) == "" {
		return fail(toastPromptError, "content must not be empty")
	}

	existing, found := e.container.PromptByID(promptID)
	if !found {
		return fail(toastPromptError, "prompt not found")
	}

	prompt, err := e.api.UpdatePrompt(api.UpdatePromptParams{
		PromptID: promptID,
		FolderID: newFolderID,
		Name:     trimmed(name),
		Content:  trimmed(content),
	})
	if err != nil {
		return e.remoteFailure(err, toastPromptDuplicate, toastPromptError)
	}

	// The server's folder id is authoritative for the reconciliation
	effectiveFolderID := prompt.FolderID
	if effectiveFolderID == "" {
		effectiveFolderID = newFolderID
	}
	if effectiveFolderID == "" {
		effectiveFolderID = existing.FolderID
	}
	prompt.FolderID = effectiveFolderID

	oldFolderID := existing.FolderID

	e.container.Set(func(s state.AppState) state.AppState {
		prompts := maps.Clone(s.Data.Prompts)
		prompts[promptID] = *prompt
		s.Data.Prompts = prompts

		if oldFolderID != effectiveFolderID {
			folderPrompts := maps.Clone(s.Data.FolderPrompts)

			oldIDs := slices.Clone(folderPrompts[oldFolderID])
			folderPrompts[oldFolderID] = slices.DeleteFunc(oldIDs, func(id string) bool {
				return id == promptID
			})

			newIDs := slices.Clone(folderPrompts[effectiveFolderID])
			folderPrompts[effectiveFolderID] = append(newIDs, promptID)

			s.Data.FolderPrompts = folderPrompts
		}
		return s
	})

	e.CloseDialog(state.DialogEditPrompt)
	return ok(toastPromptUpdated)
}

// DeletePrompt removes a prompt and strips its id from its folder's list.
func (e *Engine) DeletePrompt(promptID string) Result {
	existing, found := e.container.PromptByID(promptID)
	if !found {
		return fail(toastPromptError, "prompt not found")
	}

	if err := e.api.DeletePrompt(promptID); err != nil {
		return e.remoteFailure(err, toastPromptError, toastPromptError)
	}

	e.container.Set(func(s state.AppState) state.AppState {
		prompts := maps.Clone(s.Data.Prompts)
		delete(prompts, promptID)

		folderPrompts := maps.Clone(s.Data.FolderPrompts)
		ids := slices.Clone(folderPrompts[existing.FolderID])
		folderPrompts[existing.FolderID] = slices.DeleteFunc(ids, func(id string) bool {
			return id == promptID
		})

		s.Data.Prompts = prompts
		s.Data.FolderPrompts = folderPrompts
		return s
	})

	e.CloseDialog(state.DialogConfirmDeletePrompt)
	return ok(toastPromptDeleted)
}

// CopyPrompt puts the prompt's content on the clipboard. No state mutation;
// only the toast differs between success and failure.
func (e *Engine) CopyPrompt(promptID string) Result {
	prompt, found := e.container.PromptByID(promptID)
	if !found {
		return fail(toastCopyError, "prompt not found")
	}

	if err := e.clipboard.WriteText(prompt.Content); err != nil {
		return fail(toastCopyError, err.Error())
	}
	return ok(toastCopySuccess)
}
