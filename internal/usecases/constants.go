package usecases

const (
	registrationSubject  = "Your verification code"
	passwordResetSubject = "Reset your password"

	// Registration steps reported to metrics
	stageInit     = "init"
	stageVerify   = "verify"
	stageComplete = "complete"
)
