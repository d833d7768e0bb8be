package backend

import "fmt"

// APIError is returned whenever the backend answers with a non-success
// status. The message is whatever the response body carried in its "error"
// field, falling back to the HTTP status text. Read paths treat it as a
// fetch failure: callers log it and keep their last-known data.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// AuthError is returned by the authentication collaborator for rejected
// credentials. Recoverable: the caller shows the message inline.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("backend: auth: %s (status %d)", e.Message, e.Status)
}
