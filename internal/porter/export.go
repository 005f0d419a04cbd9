// Package porter builds and parses the JSON interchange format for folder
// export and import.
package porter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/promptdrive/pd/internal/model"
)

// Document is the interchange shape: one folder plus its prompts.
type Document struct {
	Folder  model.Folder   `json:"folder"`
	Prompts []model.Prompt `json:"prompts"`
}

// Build assembles an export document. Prompt order is preserved as given.
func Build(folder model.Folder, prompts []model.Prompt) Document {
	if prompts == nil {
		prompts = []model.Prompt{}
	}
	return Document{Folder: folder, Prompts: prompts}
}

// Encode renders the document as indented JSON.
func (d Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Filename derives an export filename from the folder name: non-alphanumeric
// runes replaced with underscores, lowercased, a timestamp appended for
// uniqueness.
func Filename(folderName string, now time.Time) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, folderName)
	return fmt.Sprintf("%s_%d.json", strings.ToLower(sanitized), now.UnixMilli())
}

// DefaultExportDir returns the default directory for exports: ~/Downloads
func DefaultExportDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}
