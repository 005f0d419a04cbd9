package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/promptdrive/pd/internal/model"
)

// CreatePromptParams holds parameters for inserting a prompt.
type CreatePromptParams struct {
	UserID   string
	FolderID string
	Name     string
	Content  string
}

// CreatePrompt inserts a prompt scoped to folder and user.
func (c *Client) CreatePrompt(params CreatePromptParams) (*model.Prompt, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"user_id":   params.UserID,
		"folder_id": params.FolderID,
		"name":      params.Name,
		"content":   params.Content,
	}

	status, body, err := c.do(http.MethodPost, c.baseURL+"/rest/v1/prompts", token, payload, true)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var prompt model.Prompt
	if err := firstRow(body, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// UpdatePromptParams holds parameters for editing a prompt. FolderID is only
// sent when non-empty, so plain edits never move the prompt.
type UpdatePromptParams struct {
	PromptID string
	FolderID string
	Name     string
	Content  string
}

// UpdatePrompt edits a prompt, optionally moving it to another folder.
func (c *Client) UpdatePrompt(params UpdatePromptParams) (*model.Prompt, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"name":    params.Name,
		"content": params.Content,
	}
	if params.FolderID != "" {
		payload["folder_id"] = params.FolderID
	}

	endpoint := fmt.Sprintf("%s/rest/v1/prompts?id=eq.%s", c.baseURL, url.QueryEscape(params.PromptID))

	status, body, err := c.do(http.MethodPatch, endpoint, token, payload, true)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var prompt model.Prompt
	if err := firstRow(body, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// DeletePrompt removes a prompt.
func (c *Client) DeletePrompt(promptID string) error {
	token, err := c.Token()
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/rest/v1/prompts?id=eq.%s", c.baseURL, url.QueryEscape(promptID))

	status, body, err := c.do(http.MethodDelete, endpoint, token, nil, true)
	if err != nil {
		return err
	}
	return checkStatus(status, body)
}
