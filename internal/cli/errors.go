package cli

import (
	"errors"
	"fmt"

	"ticketdesk/internal/backend"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidInputError struct {
	field string
	msg   string
}

func (e invalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.field, e.msg)
}

func invalidInput(field, msg string) error {
	return invalidInputError{field: field, msg: msg}
}

// backendError maps a client error to what the user should read: a typed
// not-found for 404s on a known record, the status line otherwise.
func backendError(err error, kind, id string) error {
	if err == nil {
		return nil
	}
	if id != "" && errors.Is(err, backend.ErrNotFound) {
		return errNotFound(kind, id)
	}
	return errors.New(backend.StatusMessage(err))
}
