package session

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
)

// ErrBusy is returned when the same action is already running.
var ErrBusy = errors.New("action already in progress")

// Op names a session action.
type Op string

const (
	OpLogin          Op = "login"
	OpFetchProfile   Op = "fetch_profile"
	OpRegister       Op = "register"
	OpUpdateProfile  Op = "update_profile"
	OpChangePassword Op = "change_password"
	OpDeleteAccount  Op = "delete_account"
)

// User-facing messages.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidData        = "Invalid data provided"
	MsgUserExists         = "User already exists"
	MsgInvalidPassword    = "Invalid password provided"
	MsgWrongPassword      = "Current password is incorrect"
	MsgInvalidRequest     = "Invalid request"
	MsgUnauthorized       = "Unauthorized"
	MsgSessionExpired     = "Session expired, please log in again"
	MsgForbidden          = "You do not have permission to do this"
	MsgUnavailable        = "Server unavailable"
	MsgUnexpected         = "An unexpected error occurred"
)

// ActionError is what a failed action stores in the error slot and returns.
// Message is safe to show to the user; Err keeps the cause for errors.Is.
type ActionError struct {
	Op      Op
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// opMessages holds the per-action overrides; anything else falls through to
// commonMessage.
var opMessages = map[Op]map[error]string{
	OpLogin: {
		api.ErrUnauthorized: MsgInvalidCredentials,
		api.ErrValidation:   MsgInvalidCredentials,
	},
	OpFetchProfile: {
		api.ErrUnauthorized: MsgSessionExpired,
	},
	OpRegister: {
		api.ErrValidation: MsgInvalidData,
		api.ErrConflict:   MsgUserExists,
	},
	OpUpdateProfile: {
		api.ErrValidation:   MsgInvalidData,
		api.ErrConflict:     MsgUserExists,
		api.ErrUnauthorized: MsgUnauthorized,
	},
	OpChangePassword: {
		api.ErrValidation:   MsgInvalidPassword,
		api.ErrUnauthorized: MsgWrongPassword,
	},
	OpDeleteAccount: {
		api.ErrValidation:   MsgInvalidRequest,
		api.ErrUnauthorized: MsgUnauthorized,
	},
}

// messageFor maps err to the text shown for a failed op.
func messageFor(op Op, err error) string {
	for sentinel, msg := range opMessages[op] {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	switch {
	case errors.Is(err, api.ErrForbidden):
		return MsgForbidden
	case errors.Is(err, api.ErrUnavailable):
		return MsgUnavailable
	}
	return MsgUnexpected
}

func newActionError(op Op, err error) *ActionError {
	return &ActionError{Op: op, Message: messageFor(op, err), Err: err}
}
