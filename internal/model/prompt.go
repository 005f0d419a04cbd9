package model

import "time"

// Prompt is a named piece of reusable text content belonging to exactly one folder.
type Prompt struct {
	ID        string    `json:"id"`
	FolderID  string    `json:"folder_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPromptParams holds parameters for creating a new Prompt.
type NewPromptParams struct {
	FolderID string
	Name     string
	Content  string
}

// NewPrompt creates a Prompt with generated UUID and timestamps.
func NewPrompt(params NewPromptParams) Prompt {
	now := time.Now()
	return Prompt{
		ID:        GenerateUUID(),
		FolderID:  params.FolderID,
		Name:      params.Name,
		Content:   params.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
