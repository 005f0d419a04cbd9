package engine

import (
	"maps"

	"github.com/promptdrive/pd/internal/state"
)

// OpenDialog marks a dialog open.
func (e *Engine) OpenDialog(dialog state.Dialog) {
	e.container.Set(func(s state.AppState) state.AppState {
		dialogs := maps.Clone(s.UI.Dialogs)
		dialogs[dialog] = true
		s.UI.Dialogs = dialogs
		return s
	})
}

// CloseDialog marks a dialog closed and clears the editing/deleting pointer
// it owns, so a stale id cannot leak into a later action.
func (e *Engine) CloseDialog(dialog state.Dialog) {
	e.container.Set(func(s state.AppState) state.AppState {
		dialogs := maps.Clone(s.UI.Dialogs)
		dialogs[dialog] = false
		s.UI.Dialogs = dialogs

		switch dialog {
		case state.DialogEditFolder:
			s.UI.EditingFolderID = ""
		case state.DialogEditPrompt:
			s.UI.EditingPromptID = ""
		case state.DialogConfirmDeletePrompt:
			s.UI.DeletingPromptID = ""
		case state.DialogDeleteFolder:
			s.UI.DeletingFolderID = ""
		}
		return s
	})
}

// StartEditFolder records the target id and opens the edit dialog.
func (e *Engine) StartEditFolder(folderID string) {
	e.container.Set(func(s state.AppState) state.AppState {
		dialogs := maps.Clone(s.UI.Dialogs)
		dialogs[state.DialogEditFolder] = true
		s.UI.Dialogs = dialogs
		s.UI.EditingFolderID = folderID
		return s
	})
}

// StartDeleteFolder records the target id and opens the confirmation dialog.
func (e *Engine) StartDeleteFolder(folderID string) {
	e.container.Set(func(s state.AppState) state.AppState {
		dialogs := maps.Clone(s.UI.Dialogs)
		dialogs[state.DialogDeleteFolder] = true
		s.UI.Dialogs = dialogs
		s.UI.DeletingFolderID = folderID
		return s
	})
}

// StartEditPrompt records the target id and opens the edit dialog.
func (e *Engine) StartEditPrompt(promptID string) {
	e.container.Set(func(s state.AppState) state.AppState {
		dialogs := maps.Clone(s.UI.Dialogs)
		dialogs[state.DialogEditPrompt] = true
		s.UI.Dialogs = dialogs
		s.UI.EditingPromptID = promptID
		return s
	})
}

// StartDeletePrompt records the target id and opens the confirmation dialog.
func (e *Engine) StartDeletePrompt(promptID string) {
	e.container.Set(func(s state.AppState) state.AppState {
		dialogs := maps.Clone(s.UI.Dialogs)
		dialogs[state.DialogConfirmDeletePrompt] = true
		s.UI.Dialogs = dialogs
		s.UI.DeletingPromptID = promptID
		return s
	})
}

// ToggleFolderExpansion flips a folder's expanded flag in the list view.
func (e *Engine) ToggleFolderExpansion(folderID string) {
	e.container.Set(func(s state.AppState) state.AppState {
		expanded := maps.Clone(s.UI.ExpandedFolders)
		expanded[folderID] = !expanded[folderID]
		s.UI.ExpandedFolders = expanded
		return s
	})
}
