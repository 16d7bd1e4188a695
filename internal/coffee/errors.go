package coffee

import "errors"

// UserError is an expected business-rule violation. Its message is surfaced
// verbatim to the chat user and it always rolls back the ambient transaction;
// anything that is not a UserError is treated as an infrastructure fault.
type UserError string

func (e UserError) Error() string { return string(e) }

const (
	ErrNoPriorOrder      UserError = "you have no previous order to repeat"
	ErrMenuNotFound      UserError = "no such menu"
	ErrMenuDisabled      UserError = "that menu is currently disabled"
	ErrAlreadyPicked     UserError = "the lottery has already been drawn"
	ErrNothingToPick     UserError = "no one to pick"
	ErrNothingPicked     UserError = "no picked orders to complete"
	ErrUserNotFound      UserError = "no such user"
	ErrAlreadyRegistered UserError = "user is already registered"
	ErrAlreadyExists     UserError = "that menu already exists"
	ErrMalformedInput    UserError = "malformed input"
)

// IsUserError reports whether err is an expected business-rule violation
func IsUserError(err error) bool {
	var ue UserError
	return errors.As(err, &ue)
}
