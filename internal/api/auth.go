package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/promptdrive/pd/internal/model"
)

// Account identifies the authenticated user.
type Account struct {
	ID   string
	Name string
}

// BundleFolder is a folder with its prompts embedded, as served by the
// aggregate read.
type BundleFolder struct {
	model.Folder
	Prompts []model.Prompt `json:"prompts"`
}

// UserBundle is everything needed to build the initial state tree.
type UserBundle struct {
	User         Account
	Profile      model.Profile
	Subscription *model.Subscription
	Folders      []BundleFolder
}

// Login exchanges credentials for a session token and stores it.
func (c *Client) Login(email, password string) error {
	payload := map[string]string{"email": email, "password": password}

	status, body, err := c.do(http.MethodPost, c.baseURL+"/auth/v1/token?grant_type=password", "", payload, false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return authError(status, body, "login failed")
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if result.AccessToken == "" {
		return ErrInvalidResponse
	}

	return c.storeToken(result.AccessToken)
}

// Signup creates a new account. The caller still has to log in afterwards.
func (c *Client) Signup(email, password, name string) error {
	payload := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": name},
	}

	status, body, err := c.do(http.MethodPost, c.baseURL+"/auth/v1/signup", c.anonKey, payload, false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return authError(status, body, "signup failed")
	}
	return nil
}

// Logout revokes the session server-side (best-effort, failures swallowed)
// and clears the stored token.
func (c *Client) Logout() error {
	if token, err := c.Token(); err == nil {
		_, _, _ = c.do(http.MethodPost, c.baseURL+"/auth/v1/logout", token, nil, false)
	}
	return c.ClearToken()
}

// FetchUserBundle performs the aggregate initial read: current user, profile,
// active subscription and all folders with their prompts.
func (c *Client) FetchUserBundle() (*UserBundle, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	account, err := c.fetchAccount(token)
	if err != nil {
		return nil, err
	}

	profile, err := c.fetchProfile(token, account.ID)
	if err != nil {
		return nil, err
	}

	subscription, err := c.fetchSubscription(token, account.ID)
	if err != nil {
		return nil, err
	}

	folders, err := c.fetchFolders(token, account.ID)
	if err != nil {
		return nil, err
	}

	return &UserBundle{
		User:         account,
		Profile:      profile,
		Subscription: subscription,
		Folders:      folders,
	}, nil
}

func (c *Client) fetchAccount(token string) (Account, error) {
	status, body, err := c.do(http.MethodGet, c.baseURL+"/auth/v1/user", token, nil, false)
	if err != nil {
		return Account{}, err
	}
	if err := checkStatus(status, body); err != nil {
		return Account{}, err
	}

	var user struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FullName string `json:"full_name"`
			Name     string `json:"name"`
		} `json:"user_metadata"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return Account{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if user.ID == "" {
		return Account{}, ErrInvalidResponse
	}

	name := user.UserMetadata.FullName
	if name == "" {
		name = user.UserMetadata.Name
	}
	if name == "" {
		name = user.Email
	}

	return Account{ID: user.ID, Name: name}, nil
}

func (c *Client) fetchProfile(token, userID string) (model.Profile, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/profiles?user_id=eq.%s&limit=1", c.baseURL, url.QueryEscape(userID))

	status, body, err := c.do(http.MethodGet, endpoint, token, nil, false)
	if err != nil {
		return model.Profile{}, err
	}
	if err := checkStatus(status, body); err != nil {
		return model.Profile{}, err
	}

	var rows []model.Profile
	if err := json.Unmarshal(body, &rows); err != nil {
		return model.Profile{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		// Accounts created before profile provisioning default to free
		return model.Profile{Plan: model.PlanFree}, nil
	}

	profile := rows[0]
	if profile.Plan == "" {
		profile.Plan = model.PlanFree
	}
	return profile, nil
}

func (c *Client) fetchSubscription(token, userID string) (*model.Subscription, error) {
	endpoint := fmt.Sprintf(
		"%s/rest/v1/subscriptions?user_id=eq.%s&status=in.(active,trialing)&order=current_period_end.desc&limit=1",
		c.baseURL, url.QueryEscape(userID),
	)

	status, body, err := c.do(http.MethodGet, endpoint, token, nil, false)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var rows []struct {
		ID                string `json:"id"`
		Status            string `json:"status"`
		CurrentStart      string `json:"current_period_start"`
		CurrentEnd        string `json:"current_period_end"`
		CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	sub := model.Subscription{
		ID:                rows[0].ID,
		Status:            rows[0].Status,
		CancelAtPeriodEnd: rows[0].CancelAtPeriodEnd,
	}
	sub.PeriodStart = parseTimestamp(rows[0].CurrentStart)
	sub.PeriodEnd = parseTimestamp(rows[0].CurrentEnd)
	return &sub, nil
}

func (c *Client) fetchFolders(token, userID string) ([]BundleFolder, error) {
	endpoint := fmt.Sprintf(
		"%s/rest/v1/folders?user_id=eq.%s&select=id,name,created_at,updated_at,prompts(id,folder_id,name,content,created_at,updated_at)&order=created_at.asc",
		c.baseURL, url.QueryEscape(userID),
	)

	status, body, err := c.do(http.MethodGet, endpoint, token, nil, false)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var folders []BundleFolder
	if err := json.Unmarshal(body, &folders); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	for i := range folders {
		if folders[i].Prompts == nil {
			folders[i].Prompts = []model.Prompt{}
		}
	}
	return folders, nil
}

// parseTimestamp parses backend timestamps, zero time on failure.
func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// authError extracts the backend's error description from auth responses.
func authError(status int, body []byte, fallback string) error {
	var parsed struct {
		ErrorDescription string `json:"error_description"`
		Message          string `json:"msg"`
	}
	message := fallback
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.ErrorDescription != "" {
			message = parsed.ErrorDescription
		} else if parsed.Message != "" {
			message = parsed.Message
		}
	}
	return &StatusError{Code: status, Message: message}
}
