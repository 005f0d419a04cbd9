package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/clip"
	"github.com/promptdrive/pd/internal/config"
	"github.com/promptdrive/pd/internal/engine"
	"github.com/promptdrive/pd/internal/porter"
	"github.com/promptdrive/pd/internal/state"
	"github.com/promptdrive/pd/internal/storage"
	"github.com/promptdrive/pd/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "login":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: pd login <email>\n")
				os.Exit(1)
			}
			runLogin(os.Args[2])
			return
		case "logout":
			runLogout()
			return
		case "list":
			runList()
			return
		case "export":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: pd export <folder> [path]\n")
				os.Exit(1)
			}
			var outputDir string
			if len(os.Args) >= 4 {
				outputDir = os.Args[3]
			}
			runExport(os.Args[2], outputDir)
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: pd import <file.json>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q, see 'pd help'\n", os.Args[1])
			os.Exit(1)
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `pd - prompt manager

Usage:
  pd                        Open interactive TUI
  pd login <email>          Log in (password prompted)
  pd logout                 Log out and clear the session
  pd list                   Print folders and prompts
  pd export <folder> [dir]  Export a folder to JSON
  pd import <file.json>     Import a folder from JSON
  pd help                   Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    l/Enter     Expand folder / copy prompt
    h           Collapse folder

  Editing:
    a/A         Add prompt/folder
    e           Edit selected item
    d           Delete selected item
    y           Copy prompt to clipboard

  Other:
    E           Export folder (Premium)
    I           Import folder (Premium)
    L           Enter license key
    /           Fuzzy search prompts
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/pd/config.json
  ~/.config/pd/session.json or session.db
`
	fmt.Print(help)
}

// setup wires the composition root: config, session store, API client and
// engine. An empty exportDir means exports go to ~/Downloads.
func setup(exportDir string) (*engine.Engine, *config.Config) {
	configPath, err := config.DefaultPath()
	if err != nil {
		fatal("Error getting config path", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("Error loading config", err)
	}

	store, err := storage.Open()
	if err != nil {
		fatal("Error opening session store", err)
	}

	if exportDir == "" {
		exportDir, err = porter.DefaultExportDir()
		if err != nil {
			fatal("Error getting export dir", err)
		}
	}

	client := api.NewClient(cfg, store)
	eng := engine.New(engine.Params{
		Container: state.NewContainer(),
		API:       client,
		Clipboard: clip.System{},
		Saver:     engine.DownloadsSaver{Dir: exportDir},
		OnUnauthorized: func() {
			// Invalid token is useless, drop it so the next run re-auths
			_ = client.ClearToken()
		},
	})
	return eng, cfg
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// runTUI loads the state tree and runs the full interactive TUI.
func runTUI() {
	eng, cfg := setup("")

	if err := eng.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pd login <email>' first.")
		os.Exit(1)
	}

	app := tui.NewApp(tui.AppParams{Engine: eng, SalesURL: cfg.SalesURL})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("Error running app", err)
	}
}

// runLogin prompts for the password and opens a session.
func runLogin(email string) {
	eng, _ := setup("")

	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fatal("Error reading password", err)
	}
	password = strings.TrimRight(password, "\r\n")

	result := eng.Login(email, password)
	if !result.OK {
		fmt.Fprintln(os.Stderr, result.Toast)
		os.Exit(1)
	}
	fmt.Println(result.Toast)
}

// runLogout revokes the session.
func runLogout() {
	eng, _ := setup("")
	eng.Logout()
	fmt.Println("Logged out")
}

// runList prints the folder tree to stdout.
func runList() {
	eng, _ := setup("")
	if err := eng.Initialize(); err != nil {
		fatal("Error loading data", err)
	}

	c := eng.Container()
	folders := c.SortedFolders()
	if len(folders) == 0 {
		fmt.Println("No folders")
		return
	}

	for _, folder := range folders {
		prompts := c.PromptsByFolder(folder.ID)
		fmt.Printf("%s (%d)\n", folder.Name, len(prompts))
		for _, prompt := range prompts {
			fmt.Printf("  %s\n", prompt.Name)
		}
	}
}

// runExport exports a folder, matched by name or id, to a JSON file.
func runExport(folderRef, outputDir string) {
	eng, _ := setup(outputDir)
	if err := eng.Initialize(); err != nil {
		fatal("Error loading data", err)
	}

	c := eng.Container()
	folderID := ""
	if _, found := c.FolderByID(folderRef); found {
		folderID = folderRef
	} else {
		for _, folder := range c.SortedFolders() {
			if folder.Name == folderRef {
				folderID = folder.ID
				break
			}
		}
	}
	if folderID == "" {
		fmt.Fprintf(os.Stderr, "No folder named %q\n", folderRef)
		os.Exit(1)
	}

	result := eng.ExportFolder(folderID)
	if !result.OK {
		fmt.Fprintln(os.Stderr, result.Toast)
		os.Exit(1)
	}
	fmt.Println(result.Toast)
}

// runImport imports a folder from a JSON export file.
func runImport(filePath string) {
	eng, _ := setup("")
	if err := eng.Initialize(); err != nil {
		fatal("Error loading data", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fatal("Error reading file", err)
	}

	result := eng.ImportFolder(string(data))
	if !result.OK {
		fmt.Fprintln(os.Stderr, result.Toast)
		os.Exit(1)
	}
	fmt.Println(result.Toast)
}
