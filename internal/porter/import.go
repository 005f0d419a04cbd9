package porter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/promptdrive/pd/internal/model"
)

// ErrFormat marks payloads that are not valid export documents.
var ErrFormat = errors.New("invalid import format")

// zeroWidthPrefix covers the byte-order mark and zero-width characters some
// exports carry before the opening brace.
const zeroWidthPrefix = "\uFEFF​‌‍⁠"

// Older exports used localized field names and camelCase timestamps. They are
// normalized here once; everything past Parse sees the canonical schema only.
type wireFolder struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	LegacyName      string `json:"nome"`
	CreatedAt       string `json:"created_at"`
	LegacyCreatedAt string `json:"createdAt"`
	UpdatedAt       string `json:"updated_at"`
}

type wirePrompt struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	LegacyName      string `json:"nome"`
	Content         string `json:"content"`
	LegacyContent   string `json:"conteudo"`
	CreatedAt       string `json:"created_at"`
	LegacyCreatedAt string `json:"createdAt"`
	UpdatedAt       string `json:"updated_at"`
}

type wireDocument struct {
	Folder  *wireFolder   `json:"folder"`
	Prompts *[]wirePrompt `json:"prompts"`
}

// Parse decodes an export document, tolerating a BOM/zero-width prefix and
// legacy field aliases. The shape {folder: {...}, prompts: [...]} is
// required; anything else fails before any caller-side mutation can happen.
func Parse(data []byte) (*Document, error) {
	text := strings.TrimSpace(string(data))
	text = strings.TrimLeft(text, zeroWidthPrefix)

	var wire wireDocument
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if wire.Folder == nil || wire.Prompts == nil {
		return nil, fmt.Errorf("%w: expected {folder: {...}, prompts: [...]}", ErrFormat)
	}

	doc := &Document{
		Folder: model.Folder{
			ID:        wire.Folder.ID,
			Name:      coalesce(wire.Folder.Name, wire.Folder.LegacyName),
			CreatedAt: parseTime(wire.Folder.CreatedAt, wire.Folder.LegacyCreatedAt),
			UpdatedAt: parseTime(wire.Folder.UpdatedAt, ""),
		},
		Prompts: make([]model.Prompt, 0, len(*wire.Prompts)),
	}

	for _, p := range *wire.Prompts {
		doc.Prompts = append(doc.Prompts, model.Prompt{
			ID:        p.ID,
			Name:      coalesce(p.Name, p.LegacyName),
			Content:   coalesce(p.Content, p.LegacyContent),
			CreatedAt: parseTime(p.CreatedAt, p.LegacyCreatedAt),
			UpdatedAt: parseTime(p.UpdatedAt, ""),
		})
	}

	return doc, nil
}

func coalesce(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

// parseTime returns the first parseable timestamp, zero time if neither is.
// Callers fill zero timestamps with fresh ones.
func parseTime(primary, fallback string) time.Time {
	for _, value := range []string{primary, fallback} {
		if value == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
