package auth

import "fmt"

// ValidationError reports missing or malformed local input. Recoverable: the
// message is shown inline and the form keeps its values.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("auth: %s: %s", e.Field, e.Message)
}

// SignupError reports a rejected registration. Recoverable, but the
// simulated-payment state is not carried across attempts: control returns to
// the form and the payment flag is reset.
type SignupError struct {
	Status  int
	Message string
}

func (e *SignupError) Error() string {
	return fmt.Sprintf("auth: signup failed: %s", e.Message)
}
