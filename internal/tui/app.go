// Package tui renders the prompt library as an interactive terminal view on
// top of the state container and the engine.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/promptdrive/pd/internal/engine"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/search"
	"github.com/promptdrive/pd/internal/state"
	"github.com/promptdrive/pd/internal/tui/layout"
)

// Mode identifies which view (main list or a modal) currently has input.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddFolder
	ModeEditFolder
	ModeDeleteFolder
	ModeAddPrompt
	ModeEditPrompt
	ModeDeletePrompt
	ModeLicense
	ModeImport
	ModeSearch
	ModeHelp
)

// toastExpiredMsg clears the toast line once its tick fires. Seq guards
// against an old tick clearing a newer toast.
type toastExpiredMsg struct {
	Seq int
}

const toastDuration = 3 * time.Second

// App is the main bubbletea model for the prompt manager.
type App struct {
	engine *engine.Engine
	keys   KeyMap
	styles Styles
	cfg    layout.Config

	mode   Mode
	rows   []Row
	cursor int

	// For gg command
	lastKeyWasG bool

	folderForm  FolderFormState
	promptForm  PromptFormState
	confirmForm ConfirmFormState
	licenseForm TextFormState
	importForm  TextFormState
	searchForm  SearchFormState

	toast    string
	toastSeq int

	salesURL string

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Engine   *engine.Engine
	SalesURL string  // opened on upsell refusals, empty disables
	Keys     *KeyMap // optional, uses default if nil
	Styles   *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()

	app := App{
		engine:      params.Engine,
		keys:        keys,
		styles:      styles,
		cfg:         cfg,
		folderForm:  NewFolderFormState(cfg),
		promptForm:  NewPromptFormState(cfg),
		confirmForm: NewConfirmFormState(cfg),
		licenseForm: NewTextFormState(cfg, "PREMIUM-..."),
		importForm:  NewTextFormState(cfg, "/path/to/export.json"),
		searchForm:  NewSearchFormState(cfg),
		salesURL:    params.SalesURL,
		width:       80,
		height:      24,
	}

	app.refreshRows()
	return app
}

// Cursor returns the current cursor position, for tests.
func (a App) Cursor() int { return a.cursor }

// CurrentMode returns the active mode, for tests.
func (a App) CurrentMode() Mode { return a.mode }

// Toast returns the current toast line, for tests.
func (a App) Toast() string { return a.toast }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// refreshRows rebuilds the visible list from the container and keeps the
// cursor in bounds.
func (a *App) refreshRows() {
	a.rows = buildRows(a.engine.Container())
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selected returns the row under the cursor.
func (a App) selected() (Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return Row{}, false
	}
	return a.rows[a.cursor], true
}

// selectedFolderID resolves the folder the cursor is in: the folder row
// itself, or the owning folder of a prompt row.
func (a App) selectedFolderID() string {
	row, ok := a.selected()
	if !ok {
		return ""
	}
	if row.IsFolder() {
		return row.Folder.ID
	}
	return row.Prompt.FolderID
}

// showToast sets the toast line and schedules its expiry.
func (a *App) showToast(text string) tea.Cmd {
	a.toast = text
	a.toastSeq++
	seq := a.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{Seq: seq}
	})
}

// applyResult refreshes the list and surfaces the result's effects: the
// toast line, and the sales page on an upsell refusal.
func (a *App) applyResult(result engine.Result) tea.Cmd {
	a.refreshRows()

	var cmds []tea.Cmd
	if result.Toast != "" {
		cmds = append(cmds, a.showToast(result.Toast))
	}
	if result.Upsell && a.salesURL != "" {
		// Best-effort, a failed browser launch is not worth a toast
		_ = openURL(a.salesURL)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case toastExpiredMsg:
		if msg.Seq == a.toastSeq {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeNormal:
			return a.updateNormal(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		case ModeAddFolder, ModeEditFolder:
			return a.updateFolderForm(msg)
		case ModeDeleteFolder:
			return a.updateConfirmForm(msg)
		case ModeAddPrompt, ModeEditPrompt:
			return a.updatePromptForm(msg)
		case ModeDeletePrompt:
			return a.updateDeletePrompt(msg)
		case ModeLicense:
			return a.updateLicenseForm(msg)
		case ModeImport:
			return a.updateImportForm(msg)
		case ModeSearch:
			return a.updateSearch(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// gg chord
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
		} else {
			a.lastKeyWasG = true
		}
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Toggle):
		row, ok := a.selected()
		if !ok {
			break
		}
		if row.IsFolder() {
			a.engine.ToggleFolderExpansion(row.Folder.ID)
			a.refreshRows()
		} else {
			return a, a.applyResult(a.engine.CopyPrompt(row.Prompt.ID))
		}

	case key.Matches(msg, a.keys.Collapse):
		folderID := a.selectedFolderID()
		if folderID == "" {
			break
		}
		if a.engine.Container().State().UI.ExpandedFolders[folderID] {
			a.engine.ToggleFolderExpansion(folderID)
			a.refreshRows()
		}

	case key.Matches(msg, a.keys.Copy):
		row, ok := a.selected()
		if !ok || row.IsFolder() {
			break
		}
		return a, a.applyResult(a.engine.CopyPrompt(row.Prompt.ID))

	case key.Matches(msg, a.keys.AddFolder):
		a.engine.OpenDialog(state.DialogFolder)
		a.folderForm.Start("", "")
		a.mode = ModeAddFolder

	case key.Matches(msg, a.keys.AddPrompt):
		folderID := a.selectedFolderID()
		if folderID == "" {
			return a, a.showToast("Create a folder first")
		}
		a.engine.OpenDialog(state.DialogPrompt)
		a.promptForm.Start("", folderID, "", "")
		a.mode = ModeAddPrompt

	case key.Matches(msg, a.keys.Edit):
		row, ok := a.selected()
		if !ok {
			break
		}
		if row.IsFolder() {
			a.engine.StartEditFolder(row.Folder.ID)
			a.folderForm.Start(row.Folder.ID, row.Folder.Name)
			a.mode = ModeEditFolder
		} else {
			a.engine.StartEditPrompt(row.Prompt.ID)
			a.promptForm.Start(row.Prompt.ID, row.Prompt.FolderID, row.Prompt.Name, row.Prompt.Content)
			a.mode = ModeEditPrompt
		}

	case key.Matches(msg, a.keys.Delete):
		row, ok := a.selected()
		if !ok {
			break
		}
		if row.IsFolder() {
			a.engine.StartDeleteFolder(row.Folder.ID)
			a.confirmForm.Start(row.Folder.ID, row.Folder.Name)
			a.mode = ModeDeleteFolder
		} else {
			a.engine.StartDeletePrompt(row.Prompt.ID)
			a.mode = ModeDeletePrompt
		}

	case key.Matches(msg, a.keys.Export):
		folderID := a.selectedFolderID()
		if folderID == "" {
			break
		}
		return a, a.applyResult(a.engine.ExportFolder(folderID))

	case key.Matches(msg, a.keys.Import):
		a.engine.OpenDialog(state.DialogImport)
		a.importForm.Start()
		a.mode = ModeImport

	case key.Matches(msg, a.keys.License):
		a.engine.OpenDialog(state.DialogLicense)
		a.licenseForm.Start()
		a.mode = ModeLicense

	case key.Matches(msg, a.keys.Search):
		a.searchForm.Start()
		a.mode = ModeSearch

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateFolderForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		dialog := state.DialogFolder
		if a.mode == ModeEditFolder {
			dialog = state.DialogEditFolder
		}
		a.engine.CloseDialog(dialog)
		a.folderForm.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		var result engine.Result
		if a.folderForm.FolderID == "" {
			result = a.engine.CreateFolder(a.folderForm.Input.Value())
		} else {
			result = a.engine.UpdateFolder(a.folderForm.FolderID, a.folderForm.Input.Value())
		}
		if result.OK {
			a.folderForm.Reset()
			a.mode = ModeNormal
		}
		return a, a.applyResult(result)
	}

	var cmd tea.Cmd
	a.folderForm.Input, cmd = a.folderForm.Input.Update(msg)
	return a, cmd
}

func (a App) updateConfirmForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.engine.CloseDialog(state.DialogDeleteFolder)
		a.confirmForm.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		result := a.engine.DeleteFolder(a.confirmForm.FolderID, a.confirmForm.Input.Value())
		if result.OK {
			a.confirmForm.Reset()
			a.mode = ModeNormal
		}
		return a, a.applyResult(result)
	}

	var cmd tea.Cmd
	a.confirmForm.Input, cmd = a.confirmForm.Input.Update(msg)
	return a, cmd
}

func (a App) updatePromptForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		dialog := state.DialogPrompt
		if a.mode == ModeEditPrompt {
			dialog = state.DialogEditPrompt
		}
		a.engine.CloseDialog(dialog)
		a.promptForm.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyTab:
		a.promptForm.CycleFocus()
		return a, nil

	case tea.KeyEnter:
		var result engine.Result
		if a.promptForm.PromptID == "" {
			result = a.engine.CreatePrompt(a.promptForm.FolderID, a.promptForm.Name.Value(), a.promptForm.Content.Value())
		} else {
			result = a.engine.UpdatePrompt(a.promptForm.PromptID, a.promptForm.FolderID, a.promptForm.Name.Value(), a.promptForm.Content.Value())
		}
		if result.OK {
			a.promptForm.Reset()
			a.mode = ModeNormal
		}
		return a, a.applyResult(result)
	}

	var cmd tea.Cmd
	if a.promptForm.FocusIdx == 0 {
		a.promptForm.Name, cmd = a.promptForm.Name.Update(msg)
	} else {
		a.promptForm.Content, cmd = a.promptForm.Content.Update(msg)
	}
	return a, cmd
}

func (a App) updateDeletePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		promptID := a.engine.Container().State().UI.DeletingPromptID
		result := a.engine.DeletePrompt(promptID)
		a.mode = ModeNormal
		return a, a.applyResult(result)

	case "n", "N", "esc", "q":
		a.engine.CloseDialog(state.DialogConfirmDeletePrompt)
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateLicenseForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.engine.CloseDialog(state.DialogLicense)
		a.licenseForm.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		result := a.engine.ActivatePremium(a.licenseForm.Input.Value())
		if result.OK {
			a.licenseForm.Reset()
			a.mode = ModeNormal
		}
		return a, a.applyResult(result)
	}

	var cmd tea.Cmd
	a.licenseForm.Input, cmd = a.licenseForm.Input.Update(msg)
	return a, cmd
}

func (a App) updateImportForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.engine.CloseDialog(state.DialogImport)
		a.importForm.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		path := a.importForm.Input.Value()
		data, err := os.ReadFile(path)
		if err != nil {
			return a, a.showToast(fmt.Sprintf("Could not read %s", path))
		}
		result := a.engine.ImportFolder(string(data))
		if result.OK {
			a.importForm.Reset()
			a.mode = ModeNormal
		}
		return a, a.applyResult(result)
	}

	var cmd tea.Cmd
	a.importForm.Input, cmd = a.importForm.Input.Update(msg)
	return a, cmd
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searchForm.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyUp:
		if a.searchForm.Cursor > 0 {
			a.searchForm.Cursor--
		}
		return a, nil

	case tea.KeyDown:
		if a.searchForm.Cursor < len(a.searchForm.Results)-1 {
			a.searchForm.Cursor++
		}
		return a, nil

	case tea.KeyEnter:
		if a.searchForm.Cursor >= len(a.searchForm.Results) {
			return a, nil
		}
		prompt := a.searchForm.Results[a.searchForm.Cursor].Prompt
		a.searchForm.Reset()
		a.mode = ModeNormal
		return a, a.applyResult(a.engine.CopyPrompt(prompt.ID))
	}

	var cmd tea.Cmd
	a.searchForm.Input, cmd = a.searchForm.Input.Update(msg)
	a.searchForm.Results = search.FuzzySearchPrompts(a.allPrompts(), a.searchForm.Input.Value())
	a.searchForm.Cursor = 0
	return a, cmd
}

// allPrompts collects every prompt for the global search overlay.
func (a App) allPrompts() []model.Prompt {
	s := a.engine.Container().State()
	prompts := make([]model.Prompt, 0, len(s.Data.Prompts))
	for _, p := range s.Data.Prompts {
		prompts = append(prompts, p)
	}
	return prompts
}
