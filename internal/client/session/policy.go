package session

import (
	"fmt"
	"strings"
)

// PasswordPolicy decides what happens to the local token after a successful
// password change.
type PasswordPolicy int

const (
	// KeepToken leaves the session as it is.
	KeepToken PasswordPolicy = iota
	// LogoutAfterChange drops the token so the user logs in again with the
	// new password.
	LogoutAfterChange
)

func (p PasswordPolicy) String() string {
	switch p {
	case KeepToken:
		return "keep"
	case LogoutAfterChange:
		return "logout"
	}
	return fmt.Sprintf("PasswordPolicy(%d)", int(p))
}

// ParsePasswordPolicy accepts "keep" and "logout"; empty means keep.
func ParsePasswordPolicy(s string) (PasswordPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepToken, nil
	case "logout":
		return LogoutAfterChange, nil
	}
	return KeepToken, fmt.Errorf("unknown password change policy %q", s)
}
