package model

import "time"

// Folder is a named container owning zero or more prompts.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFolderParams holds parameters for creating a new Folder.
type NewFolderParams struct {
	Name string
}

// NewFolder creates a Folder with generated UUID and timestamps.
func NewFolder(params NewFolderParams) Folder {
	now := time.Now()
	return Folder{
		ID:        GenerateUUID(),
		Name:      params.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
