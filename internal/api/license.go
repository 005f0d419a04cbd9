package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ActivateLicenseParams holds parameters for registering a license key.
type ActivateLicenseParams struct {
	UserID     string
	LicenseKey string
}

// ActivateLicense registers the key with the backend. A non-nil result is
// the server-declared expiry, which overrides the locally computed one.
func (c *Client) ActivateLicense(params ActivateLicenseParams) (*time.Time, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"user_id":     params.UserID,
		"license_key": params.LicenseKey,
	}

	status, body, err := c.do(http.MethodPost, c.baseURL+"/rest/v1/rpc/activate_license", token, payload, false)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var result struct {
		Expiry string `json:"expiry"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Expiry == "" {
		return nil, nil
	}

	expiry := parseTimestamp(result.Expiry)
	if expiry.IsZero() {
		return nil, nil
	}
	return &expiry, nil
}
