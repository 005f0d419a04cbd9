package tui

import (
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/state"
)

// RowKind distinguishes between folders and prompts in the list.
type RowKind int

const (
	RowFolder RowKind = iota
	RowPrompt
)

// Row is one visible line of the main list: a folder, or a prompt shown
// under its expanded folder.
type Row struct {
	Kind   RowKind
	Folder model.Folder
	Prompt model.Prompt
}

// ID returns the row's record id regardless of kind.
func (r Row) ID() string {
	if r.Kind == RowFolder {
		return r.Folder.ID
	}
	return r.Prompt.ID
}

// Title returns a display title for the row.
func (r Row) Title() string {
	if r.Kind == RowFolder {
		return r.Folder.Name
	}
	return r.Prompt.Name
}

// IsFolder returns true if this row is a folder.
func (r Row) IsFolder() bool {
	return r.Kind == RowFolder
}

// buildRows flattens the state tree into the visible list: folders sorted by
// name, each expanded folder followed by its prompts sorted by name.
func buildRows(c *state.Container) []Row {
	s := c.State()

	var rows []Row
	for _, folder := range c.SortedFolders() {
		rows = append(rows, Row{Kind: RowFolder, Folder: folder})
		if !s.UI.ExpandedFolders[folder.ID] {
			continue
		}
		for _, prompt := range c.PromptsByFolder(folder.ID) {
			rows = append(rows, Row{Kind: RowPrompt, Prompt: prompt})
		}
	}
	return rows
}
