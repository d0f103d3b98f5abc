// internal/discovery/errors.go

package discovery

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequiresBasicInfo      = errors.New("basic profile info required before discovery")
	ErrCannotLikeSelf         = errors.New("cannot like yourself")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
	ErrAlreadyInteracted      = errors.New("already interacted with this user")
	ErrInteractionNotFound    = errors.New("interaction not found")
	ErrMatchNotFound          = errors.New("match not found")
	ErrUnauthorized           = errors.New("unauthorized to perform this action")
	ErrTooManySwipes          = errors.New("too many swipes, please slow down")
)

// IncompleteProfileError is the swipe-readiness precondition failure. It
// names the incomplete sections so the client can route the user to the
// right onboarding screen instead of showing a generic error.
type IncompleteProfileError struct {
	MissingFields []string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile incomplete for swiping: %s", strings.Join(e.MissingFields, ", "))
}
