package httperr

import "errors"

// Kind classifies a business error for transport mapping.
type Kind int

const (
	KindBusiness Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDependency
	KindUnauthorized
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func Dependency(code, message string, err error) error {
	return BusinessError{Kind: KindDependency, Code: code, Message: message, Err: err}
}

func Unauthenticated(code, message string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
