package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them
	// except for ExitCodeHandledError, which never reaches the user with a message of its own.

	// ExitCodeHandledError indicates that there was an error that was logged already and does not need to be printed
	// by main.
	ExitCodeHandledError = 2

	// ExitCodeGenerationFailed indicates that a run completed but at least one item failed, and the run was configured
	// to fail on errors.
	ExitCodeGenerationFailed = 6
)
