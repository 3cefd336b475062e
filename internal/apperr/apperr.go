// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound covers missing sections, backups and payment ids.
	KindNotFound Kind = iota
	// KindInvalidInput covers missing required fields and malformed JSON.
	KindInvalidInput
	// KindStorageFailure covers underlying persistence I/O errors.
	KindStorageFailure
	// KindPartialWrite marks a multi-section save where some upserts
	// succeeded before a later one failed. The store may be left
	// partially updated; the operation still reports failure as a whole.
	KindPartialWrite
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindStorageFailure:
		return "storage_failure"
	case KindPartialWrite:
		return "partial_write_failure"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsInvalidInput(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalidInput
}
