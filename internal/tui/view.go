package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/promptdrive/pd/internal/config"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	if a.mode != ModeNormal {
		return a.renderModal()
	}

	header := a.renderHeader()
	list := a.renderList()
	toast := a.renderToastLine()
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, list, toast, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the title line with the plan badge and prompt counter.
func (a App) renderHeader() string {
	c := a.engine.Container()
	s := c.State()

	title := a.styles.Header.Render("pd")

	var badge string
	if s.User.Plan == model.PlanPremium {
		badge = a.styles.BadgePremium.Render("premium")
	} else {
		badge = a.styles.Badge.Render(
			fmt.Sprintf("free %d/%d", c.PromptCountTotal(), config.FreeMaxPrompts))
	}

	if s.UI.Loading {
		badge += a.styles.Badge.Render("  loading...")
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", badge)
}

// renderList renders the folder/prompt rows with a scroll window around the
// cursor.
func (a App) renderList() string {
	if len(a.rows) == 0 {
		return a.styles.Empty.Render("No folders yet. Press A to create one.")
	}

	maxVisible := layout.ListHeight(a.height, a.cfg.List)
	start, end := layout.VisibleWindow(maxVisible, a.cursor, len(a.rows))

	expanded := a.engine.Container().State().UI.ExpandedFolders
	maxWidth := a.width - 8

	var lines []string
	for i := start; i < end; i++ {
		row := a.rows[i]

		var line string
		if row.IsFolder() {
			marker := "▸"
			if expanded[row.Folder.ID] {
				marker = "▾"
			}
			line = fmt.Sprintf("%s %s", marker, row.Folder.Name)
		} else {
			line = "  " + row.Prompt.Name
		}
		line, _ = layout.TruncateText(line, maxWidth, a.cfg.Text)

		if i == a.cursor {
			lines = append(lines, a.styles.ItemSelected.Render(line))
		} else {
			lines = append(lines, a.styles.Item.Render(line))
		}
	}

	return strings.Join(lines, "\n")
}

func (a App) renderToastLine() string {
	if a.toast == "" {
		return ""
	}
	return a.styles.Toast.Render(a.toast)
}

// renderHelpBar renders the abbreviated key hints at the bottom.
func (a App) renderHelpBar() string {
	hints := []key.Binding{
		a.keys.Down, a.keys.Toggle, a.keys.AddPrompt, a.keys.AddFolder,
		a.keys.Copy, a.keys.Search, a.keys.Help, a.keys.Quit,
	}

	parts := make([]string, 0, len(hints))
	for _, b := range hints {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return a.styles.Help.Render(strings.Join(parts, "  ·  "))
}

// renderModal renders the active modal centered on the terminal.
func (a App) renderModal() string {
	width := layout.ModalWidth(a.width, a.cfg.Modal)

	var body string
	switch a.mode {
	case ModeAddFolder:
		body = a.renderInputModal("New folder", a.folderForm.Input.View())
	case ModeEditFolder:
		body = a.renderInputModal("Rename folder", a.folderForm.Input.View())
	case ModeDeleteFolder:
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.styles.ModalTitle.Render("Delete folder"),
			"",
			a.styles.ModalLabel.Render(
				fmt.Sprintf("This removes %q and every prompt in it.", a.confirmForm.FolderName)),
			a.styles.ModalLabel.Render("Type the folder name to confirm:"),
			"",
			a.confirmForm.Input.View(),
			"",
			a.styles.ModalLabel.Render("enter confirm · esc cancel"),
		)
	case ModeAddPrompt, ModeEditPrompt:
		title := "New prompt"
		if a.mode == ModeEditPrompt {
			title = "Edit prompt"
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.styles.ModalTitle.Render(title),
			"",
			a.styles.ModalLabel.Render("Name"),
			a.promptForm.Name.View(),
			"",
			a.styles.ModalLabel.Render("Content"),
			a.promptForm.Content.View(),
			"",
			a.styles.ModalLabel.Render("tab switch field · enter save · esc cancel"),
		)
	case ModeDeletePrompt:
		name := ""
		if prompt, ok := a.engine.Container().PromptByID(
			a.engine.Container().State().UI.DeletingPromptID); ok {
			name = prompt.Name
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.styles.ModalTitle.Render("Delete prompt"),
			"",
			a.styles.ModalLabel.Render(fmt.Sprintf("Delete %q?", name)),
			"",
			a.styles.ModalLabel.Render("y confirm · n cancel"),
		)
	case ModeLicense:
		body = a.renderInputModal("Activate Premium", a.licenseForm.Input.View())
	case ModeImport:
		body = a.renderInputModal("Import folder from JSON", a.importForm.Input.View())
	case ModeSearch:
		body = a.renderSearchModal()
	case ModeHelp:
		body = a.renderHelpModal()
	}

	modal := a.styles.Modal.Width(width).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

func (a App) renderInputModal(title, input string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.ModalTitle.Render(title),
		"",
		input,
		"",
		a.styles.ModalLabel.Render("enter confirm · esc cancel"),
	)
}

func (a App) renderSearchModal() string {
	lines := []string{
		a.styles.ModalTitle.Render("Search prompts"),
		"",
		a.searchForm.Input.View(),
		"",
	}

	if len(a.searchForm.Results) == 0 {
		lines = append(lines, a.styles.Empty.Render("No matches"))
	} else {
		start, end := layout.VisibleWindow(
			a.cfg.List.SearchMaxVisible, a.searchForm.Cursor, len(a.searchForm.Results))
		for i := start; i < end; i++ {
			name := a.searchForm.Results[i].Prompt.Name
			if i == a.searchForm.Cursor {
				lines = append(lines, a.styles.ItemSelected.Render(name))
			} else {
				lines = append(lines, a.styles.Item.Render(name))
			}
		}
	}

	lines = append(lines, "", a.styles.ModalLabel.Render("enter copy · esc close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a App) renderHelpModal() string {
	bindings := []key.Binding{
		a.keys.Up, a.keys.Down, a.keys.Top, a.keys.Bottom,
		a.keys.Toggle, a.keys.Collapse, a.keys.Copy,
		a.keys.AddPrompt, a.keys.AddFolder, a.keys.Edit, a.keys.Delete,
		a.keys.Export, a.keys.Import, a.keys.License,
		a.keys.Search, a.keys.Quit,
	}

	lines := []string{a.styles.ModalTitle.Render("Keys"), ""}
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("  %-10s %s", b.Help().Key, b.Help().Desc))
	}
	lines = append(lines, "", a.styles.ModalLabel.Render("any key to close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
