package errors

import "fmt"

var (
	ErrValidation         = fmt.Errorf("invalid input")
	ErrHandleTaken        = fmt.Errorf("handle already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid handle or secret")
	// ErrUnknownHandle stays between the repository and the account
	// service; the login path folds it into ErrInvalidCredentials so a
	// caller cannot probe which handles exist.
	ErrUnknownHandle = fmt.Errorf("unknown handle")
	ErrContentBlocked     = fmt.Errorf("message contains sensitive data and cannot be sent")
	ErrEmptyPolicy        = fmt.Errorf("no policy phrases have been provided")
)
