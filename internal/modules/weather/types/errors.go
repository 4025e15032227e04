package types

import "errors"

// Kind classifies why a lookup failed.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidInput
	KindTimeout
	KindConnectionFailed
	KindCityNotFound
	KindAuthError
	KindProviderError
	KindIncompleteData
)

var kindNames = map[Kind]string{
	KindUnexpected:       "unexpected",
	KindInvalidInput:     "invalid_input",
	KindTimeout:          "timeout",
	KindConnectionFailed: "connection_failed",
	KindCityNotFound:     "city_not_found",
	KindAuthError:        "auth_error",
	KindProviderError:    "provider_error",
	KindIncompleteData:   "incomplete_data",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnexpected]
}

// Error is a classified lookup failure. Message is safe to show to users;
// Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnexpected when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// UserMessage returns the user facing message of a classified error. ok is
// false for nil, unclassified and KindUnexpected errors.
func UserMessage(err error) (msg string, ok bool) {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindUnexpected {
		return "", false
	}
	return e.Message, true
}
