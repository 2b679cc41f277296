package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/credentials"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

var (
	// ErrTransport wraps network level failures: unreachable host, timeouts,
	// undecodable responses.
	ErrTransport = errors.New("cannot reach server")

	// ErrUnauthorized is returned for a 401 or a missing token. Callers treat
	// it as an expired session.
	ErrUnauthorized = errors.New("session expired, please log in again")
)

// APIError is a response the backend answered with success:false or a
// non-2xx status. Message is the backend's text, already localized.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return e.Message
}

// UserMessage maps err onto the text shown to the admin.
func UserMessage(err error) string {
	var (
		apiErr *APIError
		valErr *notification.ValidationError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized), errors.Is(err, credentials.ErrNoToken):
		return "Please log in again"
	case errors.As(err, &valErr):
		return valErr.Error()
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return "Cannot reach server"
	default:
		return err.Error()
	}
}

// IsAuthError reports whether err means the session must be re-established.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, credentials.ErrNoToken)
}
