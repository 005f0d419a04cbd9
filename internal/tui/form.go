package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/promptdrive/pd/internal/search"
	"github.com/promptdrive/pd/internal/tui/layout"
)

// FolderFormState holds state for the create/edit folder modal.
// An empty FolderID means a new folder is being created.
type FolderFormState struct {
	Input    textinput.Model
	FolderID string
}

// NewFolderFormState creates a FolderFormState with initialized input.
func NewFolderFormState(cfg layout.Config) FolderFormState {
	input := textinput.New()
	input.Placeholder = "Folder name"
	input.CharLimit = cfg.Input.NameCharLimit
	input.Width = cfg.Input.StandardWidth
	return FolderFormState{Input: input}
}

// Start prepares the form for a session and focuses the input.
func (f *FolderFormState) Start(folderID, name string) {
	f.FolderID = folderID
	f.Input.SetValue(name)
	f.Input.CursorEnd()
	f.Input.Focus()
}

// Reset clears the form for the next session.
func (f *FolderFormState) Reset() {
	f.FolderID = ""
	f.Input.Reset()
	f.Input.Blur()
}

// PromptFormState holds state for the create/edit prompt modal: a name
// field and a content field, tab-switchable. An empty PromptID means a
// new prompt is being created in FolderID.
type PromptFormState struct {
	Name     textinput.Model
	Content  textinput.Model
	FocusIdx int // 0 = name, 1 = content
	PromptID string
	FolderID string
}

// NewPromptFormState creates a PromptFormState with initialized inputs.
func NewPromptFormState(cfg layout.Config) PromptFormState {
	name := textinput.New()
	name.Placeholder = "Prompt name"
	name.CharLimit = cfg.Input.NameCharLimit
	name.Width = cfg.Input.StandardWidth

	content := textinput.New()
	content.Placeholder = "Prompt text..."
	content.CharLimit = cfg.Input.ContentCharLimit
	content.Width = cfg.Input.ContentWidth

	return PromptFormState{Name: name, Content: content}
}

// Start prepares the form for a session and focuses the name field.
func (p *PromptFormState) Start(promptID, folderID, name, content string) {
	p.PromptID = promptID
	p.FolderID = folderID
	p.Name.SetValue(name)
	p.Name.CursorEnd()
	p.Content.SetValue(content)
	p.Content.CursorEnd()
	p.FocusIdx = 0
	p.Name.Focus()
	p.Content.Blur()
}

// CycleFocus moves focus between the name and content fields.
func (p *PromptFormState) CycleFocus() {
	p.FocusIdx = (p.FocusIdx + 1) % 2
	if p.FocusIdx == 0 {
		p.Name.Focus()
		p.Content.Blur()
	} else {
		p.Name.Blur()
		p.Content.Focus()
	}
}

// Reset clears the form for the next session.
func (p *PromptFormState) Reset() {
	p.PromptID = ""
	p.FolderID = ""
	p.Name.Reset()
	p.Content.Reset()
	p.FocusIdx = 0
	p.Name.Blur()
	p.Content.Blur()
}

// ConfirmFormState holds state for the delete-folder confirmation modal,
// where the user retypes the folder name.
type ConfirmFormState struct {
	Input      textinput.Model
	FolderID   string
	FolderName string
}

// NewConfirmFormState creates a ConfirmFormState with initialized input.
func NewConfirmFormState(cfg layout.Config) ConfirmFormState {
	input := textinput.New()
	input.Placeholder = "Type the folder name to confirm"
	input.CharLimit = cfg.Input.NameCharLimit
	input.Width = cfg.Input.StandardWidth
	return ConfirmFormState{Input: input}
}

// Start prepares the confirmation for a session.
func (c *ConfirmFormState) Start(folderID, folderName string) {
	c.FolderID = folderID
	c.FolderName = folderName
	c.Input.Reset()
	c.Input.Focus()
}

// Reset clears the confirmation for the next session.
func (c *ConfirmFormState) Reset() {
	c.FolderID = ""
	c.FolderName = ""
	c.Input.Reset()
	c.Input.Blur()
}

// TextFormState is a single-line input modal, used for the license key and
// the import file path.
type TextFormState struct {
	Input textinput.Model
}

// NewTextFormState creates a TextFormState with the given placeholder.
func NewTextFormState(cfg layout.Config, placeholder string) TextFormState {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = cfg.Input.NameCharLimit
	input.Width = cfg.Input.StandardWidth
	return TextFormState{Input: input}
}

// Start focuses the input for a session.
func (t *TextFormState) Start() {
	t.Input.Reset()
	t.Input.Focus()
}

// Reset clears the input for the next session.
func (t *TextFormState) Reset() {
	t.Input.Reset()
	t.Input.Blur()
}

// SearchFormState holds state for the fuzzy search overlay.
type SearchFormState struct {
	Input   textinput.Model
	Results []search.Result
	Cursor  int
}

// NewSearchFormState creates a SearchFormState with initialized input.
func NewSearchFormState(cfg layout.Config) SearchFormState {
	input := textinput.New()
	input.Placeholder = "Search prompts..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.StandardWidth
	return SearchFormState{Input: input}
}

// Start focuses the input for a session.
func (s *SearchFormState) Start() {
	s.Input.Reset()
	s.Results = nil
	s.Cursor = 0
	s.Input.Focus()
}

// Reset clears the overlay for the next session.
func (s *SearchFormState) Reset() {
	s.Input.Reset()
	s.Results = nil
	s.Cursor = 0
	s.Input.Blur()
}
