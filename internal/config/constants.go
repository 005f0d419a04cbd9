package config

// FreeMaxPrompts is the total prompt ceiling on the free plan.
const FreeMaxPrompts = 5

// LicenseDurationDays is the premium period granted per license activation
// when the backend does not declare an expiry of its own.
const LicenseDurationDays = 30

// LicenseMasterKey is the shared secret accepted as a premium license key.
// Stands in for server-side license validation.
const LicenseMasterKey = "PREMIUM-MASTER-2024"

// AccessTokenKey is the session store key holding the bearer token.
const AccessTokenKey = "accessToken"
