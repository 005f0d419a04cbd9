package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/promptdrive/pd/internal/model"
)

// CreateFolderParams holds parameters for inserting a folder.
type CreateFolderParams struct {
	UserID string
	Name   string
}

// CreateFolder inserts a folder scoped to the user and returns the stored row.
func (c *Client) CreateFolder(params CreateFolderParams) (*model.Folder, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"user_id": params.UserID,
		"name":    params.Name,
	}

	status, body, err := c.do(http.MethodPost, c.baseURL+"/rest/v1/folders", token, payload, true)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var folder model.Folder
	if err := firstRow(body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// UpdateFolderParams holds parameters for renaming a folder.
type UpdateFolderParams struct {
	FolderID string
	Name     string
}

// UpdateFolder renames a folder and returns the stored row, whose
// updated_at is the server's, not the client's guess.
func (c *Client) UpdateFolder(params UpdateFolderParams) (*model.Folder, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/rest/v1/folders?id=eq.%s", c.baseURL, url.QueryEscape(params.FolderID))
	payload := map[string]string{"name": params.Name}

	status, body, err := c.do(http.MethodPatch, endpoint, token, payload, true)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var folder model.Folder
	if err := firstRow(body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder removes a folder. The backend cascades to its prompts.
func (c *Client) DeleteFolder(folderID string) error {
	token, err := c.Token()
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/rest/v1/folders?id=eq.%s", c.baseURL, url.QueryEscape(folderID))

	status, body, err := c.do(http.MethodDelete, endpoint, token, nil, true)
	if err != nil {
		return err
	}
	return checkStatus(status, body)
}
