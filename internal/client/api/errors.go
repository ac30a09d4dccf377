package api

import "errors"

// ErrUnavailable marks transport-level failures: the request never completed,
// so the server's opinion is unknown. Callers match it with errors.Is.
var ErrUnavailable = errors.New("server unavailable")

// AuthError is a server-side rejection: non-2xx status with a JSON body.
// Message carries the server-supplied text (or a generic fallback) and
// FieldErrors, when present, maps field names to validation messages so the
// caller can highlight individual form fields.
type AuthError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

func (e *AuthError) Error() string {
	return e.Message
}

// AsAuthError unwraps err into *AuthError, if it is one.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
