package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Zhanerrke588595/it-events/internal/common"
)

// StatusError is a non-2xx response. It matches the common sentinel for
// its status code with errors.Is.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	default:
		return common.ErrTransport
	}
}

// mapError turns a round-trip failure into a transport error, keeping
// context cancellation visible to callers.
func mapError(method, path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %v", common.ErrTransport, method, path, err)
}
