package engine

// User-facing notification texts returned in Result.Toast.
const (
	toastLoginSuccess   = "Logged in successfully"
	toastLoginError     = "Invalid e-mail or password"
	toastSignupSuccess  = "Account created! Log in to continue"
	toastSignupError    = "Could not create account"
	toastSessionExpired = "Session expired. Please log in again"

	toastFolderCreated      = "Folder created"
	toastFolderUpdated      = "Folder updated"
	toastFolderDeleted      = "Folder removed"
	toastFolderError        = "Could not save folder"
	toastFolderDeleteError  = "Could not remove folder"
	toastFolderNameMismatch = "The typed name does not match the folder name"
	toastFolderDuplicate    = "A folder with that name already exists"

	toastPromptCreated     = "Prompt created"
	toastPromptUpdated     = "Prompt updated"
	toastPromptDeleted     = "Prompt removed"
	toastPromptError       = "Could not process prompt"
	toastPromptDuplicate   = "A prompt with that name already exists in this folder"
	toastPromptFolderError = "The selected folder does not belong to your account"

	toastLimitReached     = "Free plan limit reached (5 prompts)"
	toastPremiumActivated = "Premium active until"
	toastInvalidKey       = "Invalid license key"
	toastPremiumFeature   = "Premium feature - activate Premium to use it"

	toastCopySuccess   = "Prompt copied to clipboard!"
	toastCopyError     = "Could not copy prompt"
	toastExportSuccess = "Folder exported!"
	toastExportError   = "Could not export folder"
	toastImportSuccess = "Import completed"
	toastImportError   = "Could not import folder - check the JSON format"
)
