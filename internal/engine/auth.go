package engine

import "github.com/promptdrive/pd/internal/state"

// Login exchanges credentials for a session and loads the initial state.
func (e *Engine) Login(email, password string) Result {
	if trimmed(email) == "" || password == "" {
		return fail(toastLoginError, "email and password are required")
	}

	if err := e.api.Login(trimmed(email), password); err != nil {
		return fail(toastLoginError, err.Error())
	}

	if err := e.Initialize(); err != nil {
		return fail(toastSessionExpired, err.Error())
	}
	return ok(toastLoginSuccess)
}

// Signup creates an account. The user still logs in afterwards.
func (e *Engine) Signup(email, password, name string) Result {
	if trimmed(email) == "" || password == "" {
		return fail(toastSignupError, "email and password are required")
	}

	if err := e.api.Signup(trimmed(email), password, trimmed(name)); err != nil {
		return fail(toastSignupError, err.Error())
	}
	return ok(toastSignupSuccess)
}

// Logout revokes the session (best-effort) and resets the state tree.
func (e *Engine) Logout() Result {
	_ = e.api.Logout()

	e.container.Set(func(state.AppState) state.AppState {
		return state.NewAppState()
	})
	return ok("")
}
