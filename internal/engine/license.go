package engine

import (
	"fmt"

	"github.com/promptdrive/pd/internal/api"
	"github.com/promptdrive/pd/internal/config"
	"github.com/promptdrive/pd/internal/model"
	"github.com/promptdrive/pd/internal/state"
)

// ActivatePremium validates the license key and switches the plan. The key
// must equal the shared secret; the backend is then informed and may declare
// its own expiry, which overrides the locally computed one.
func (e *Engine) ActivatePremium(licenseKey string) Result {
	key := trimmed(licenseKey)
	if key == "" {
		return fail(toastInvalidKey, "license key must not be empty")
	}
	if key != config.LicenseMasterKey {
		return fail(toastInvalidKey, "license key rejected")
	}

	serverExpiry, err := e.api.ActivateLicense(api.ActivateLicenseParams{
		UserID:     e.container.State().User.ID,
		LicenseKey: key,
	})
	if err != nil {
		return e.remoteFailure(err, toastInvalidKey, toastInvalidKey)
	}

	expiry := e.now().AddDate(0, 0, config.LicenseDurationDays)
	if serverExpiry != nil {
		expiry = *serverExpiry
	}

	e.container.Set(func(s state.AppState) state.AppState {
		s.User.Plan = model.PlanPremium
		s.User.LicenseKey = key
		s.User.LicenseExpiry = &expiry
		s.User.UpdatedAt = e.now()
		return s
	})

	e.CloseDialog(state.DialogLicense)
	return ok(fmt.Sprintf("%s %s", toastPremiumActivated, expiry.Format("Jan 2, 2006")))
}
