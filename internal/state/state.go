package state

import (
	"time"

	"github.com/promptdrive/pd/internal/model"
)

// Dialog identifies one of the application's modal dialogs.
type Dialog string

const (
	DialogFolder              Dialog = "folder"
	DialogEditFolder          Dialog = "editFolder"
	DialogDeleteFolder        Dialog = "deleteFolder"
	DialogPrompt              Dialog = "prompt"
	DialogEditPrompt          Dialog = "editPrompt"
	DialogConfirmDeletePrompt Dialog = "confirmDeletePrompt"
	DialogLicense             Dialog = "license"
	DialogImport              Dialog = "import"
)

// UIState is session-local view state. Never persisted.
type UIState struct {
	Loading bool
	Err     string

	Dialogs         map[Dialog]bool
	ExpandedFolders map[string]bool

	// Pointers passed from list rows into dialogs. Cleared when the
	// owning dialog closes so stale ids cannot leak into a later action.
	EditingFolderID  string
	EditingPromptID  string
	DeletingPromptID string
	DeletingFolderID string
}

// DataState holds the synced folder and prompt collections.
type DataState struct {
	Folders map[string]model.Folder
	Prompts map[string]model.Prompt

	// FolderPrompts maps folder id to the ids of the prompts it owns.
	// Every id listed must exist in Prompts with a matching FolderID.
	FolderPrompts map[string][]string
}

// AppState is the full client state tree.
type AppState struct {
	User         model.User
	Profile      *model.Profile
	Subscription *model.Subscription
	UI           UIState
	Data         DataState
}

// NewAppState returns the initial state tree for an unauthenticated session.
func NewAppState() AppState {
	now := time.Now()
	return AppState{
		User: model.User{
			ID:        "",
			Plan:      model.PlanFree,
			CreatedAt: now,
			UpdatedAt: now,
		},
		UI: UIState{
			Dialogs:         map[Dialog]bool{},
			ExpandedFolders: map[string]bool{},
		},
		Data: DataState{
			Folders:       map[string]model.Folder{},
			Prompts:       map[string]model.Prompt{},
			FolderPrompts: map[string][]string{},
		},
	}
}
