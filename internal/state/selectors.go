package state

import (
	"sort"

	"github.com/promptdrive/pd/internal/config"
	"github.com/promptdrive/pd/internal/model"
)

// PromptCountTotal returns the number of prompts across all folders.
func (c *Container) PromptCountTotal() int {
	return len(c.State().Data.Prompts)
}

// PromptsByFolder returns the folder's prompts sorted by name.
// Unknown folder ids yield an empty slice.
func (c *Container) PromptsByFolder(folderID string) []model.Prompt {
	s := c.State()

	ids := s.Data.FolderPrompts[folderID]
	prompts := make([]model.Prompt, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Data.Prompts[id]; ok {
			prompts = append(prompts, p)
		}
	}

	sort.Slice(prompts, func(i, j int) bool {
		return prompts[i].Name < prompts[j].Name
	})
	return prompts
}

// FolderByID finds a folder by id, second result false if absent.
func (c *Container) FolderByID(folderID string) (model.Folder, bool) {
	folder, ok := c.State().Data.Folders[folderID]
	return folder, ok
}

// PromptByID finds a prompt by id, second result false if absent.
func (c *Container) PromptByID(promptID string) (model.Prompt, bool) {
	prompt, ok := c.State().Data.Prompts[promptID]
	return prompt, ok
}

// IsFreePlan reports whether the current user is on the free tier.
func (c *Container) IsFreePlan() bool {
	return c.State().User.Plan == model.PlanFree
}

// CanCreatePrompt reports whether another prompt may be created: always on
// premium, below the free-tier ceiling otherwise.
func (c *Container) CanCreatePrompt() bool {
	if !c.IsFreePlan() {
		return true
	}
	return c.PromptCountTotal() < config.FreeMaxPrompts
}

// SortedFolders returns all folders ordered by name, for display.
func (c *Container) SortedFolders() []model.Folder {
	s := c.State()
	folders := make([]model.Folder, 0, len(s.Data.Folders))
	for _, f := range s.Data.Folders {
		folders = append(folders, f)
	}
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})
	return folders
}
