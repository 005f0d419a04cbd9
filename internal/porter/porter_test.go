package porter_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/porter"
)

func TestBuildEncodeParse_RoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	folder := model.Folder{ID: "f1", Name: "Marketing", CreatedAt: created, UpdatedAt: created}
	prompts := []model.Prompt{
		{ID: "p1", FolderID: "f1", Name: "Pitch", Content: "Sell it", CreatedAt: created, UpdatedAt: created},
	}

	data, err := porter.Build(folder, prompts).Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	doc, err := porter.Parse(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Folder.ID != "f1" || doc.Folder.Name != "Marketing" {
		t.Errorf("unexpected folder: %+v", doc.Folder)
	}
	if len(doc.Prompts) != 1 || doc.Prompts[0].Name != "Pitch" || doc.Prompts[0].Content != "Sell it" {
		t.Errorf("unexpected prompts: %+v", doc.Prompts)
	}
	if !doc.Folder.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", doc.Folder.CreatedAt, created)
	}
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	payload := "\uFEFF" + `{"folder":{"id":"f1","name":"A"},"prompts":[]}`

	doc, err := porter.Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Folder.Name != "A" {
		t.Errorf("folder name = %q", doc.Folder.Name)
	}
}

func TestParse_StripsZeroWidthPrefix(t *testing.T) {
	payload := "​⁠" + `{"folder":{"id":"f1","name":"A"},"prompts":[]}`

	if _, err := porter.Parse([]byte(payload)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
}

func TestParse_LegacyAliases(t *testing.T) {
	payload := `{
		"folder": {"id": "f1", "nome": "Pasta", "createdAt": "2023-06-01T00:00:00Z"},
		"prompts": [{"id": "p1", "nome": "Velho", "conteudo": "texto antigo"}]
	}`

	doc, err := porter.Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Folder.Name != "Pasta" {
		t.Errorf("folder name = %q, want %q", doc.Folder.Name, "Pasta")
	}
	if doc.Folder.CreatedAt.IsZero() {
		t.Error("legacy createdAt should be parsed")
	}
	if doc.Prompts[0].Name != "Velho" || doc.Prompts[0].Content != "texto antigo" {
		t.Errorf("legacy prompt fields not normalized: %+v", doc.Prompts[0])
	}
}

func TestParse_CanonicalFieldWinsOverLegacy(t *testing.T) {
	payload := `{
		"folder": {"id": "f1", "name": "New", "nome": "Old"},
		"prompts": []
	}`

	doc, err := porter.Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Folder.Name != "New" {
		t.Errorf("folder name = %q, want canonical %q", doc.Folder.Name, "New")
	}
}

func TestParse_RejectsBadShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "definitely not json"},
		{name: "missing folder", payload: `{"prompts":[]}`},
		{name: "missing prompts", payload: `{"folder":{"id":"f1","name":"A"}}`},
		{name: "prompts not an array", payload: `{"folder":{"id":"f1","name":"A"},"prompts":{}}`},
		{name: "empty input", payload: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := porter.Parse([]byte(tt.payload))
			if !errors.Is(err, porter.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	got := porter.Filename("Q4 Marketing (drafts)!", now)

	if !strings.HasPrefix(got, "q4_marketing__drafts__") {
		t.Errorf("unexpected sanitized prefix: %q", got)
	}
	if !strings.HasSuffix(got, "_1700000000000.json") {
		t.Errorf("expected timestamp suffix, got %q", got)
	}
}
