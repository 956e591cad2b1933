package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindAlreadyExists     ErrorKind = "already_exists"
	KindNotFound          ErrorKind = "not_found"
	KindForbidden         ErrorKind = "forbidden"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindUnauthorized      ErrorKind = "unauthorized"
)

// Error is returned for every failure the caller can act on. Anything else is internal.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and message so sentinels compare by value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func ValidationError(msg string) *Error { return newError(KindValidation, msg) }
func NotFoundError(msg string) *Error   { return newError(KindNotFound, msg) }
func ForbiddenError(msg string) *Error  { return newError(KindForbidden, msg) }

var (
	ErrAlreadySwiped        = newError(KindAlreadyExists, "already swiped on this profile")
	ErrSelfSwipe            = newError(KindValidation, "cannot swipe on yourself")
	ErrInvalidDirection     = newError(KindValidation, "direction must be like or pass")
	ErrTargetNotFound       = newError(KindNotFound, "target profile not found")
	ErrProfileNotFound      = newError(KindNotFound, "profile not found")
	ErrProfileExists        = newError(KindAlreadyExists, "profile already exists")
	ErrUserNotFound         = newError(KindNotFound, "user not found")
	ErrUserTypeNotSet       = newError(KindValidation, "user type not set")
	ErrRoleAlreadySet       = newError(KindAlreadyExists, "user type already set")
	ErrWrongUserType        = newError(KindForbidden, "action not available for this user type")
	ErrMemberNotApproved    = newError(KindForbidden, "member profile is awaiting admin approval")
	ErrNotWhitelisted       = newError(KindForbidden, "bc member profiles are created by an admin or with an invite code")
	ErrMatchNotFound        = newError(KindNotFound, "match not found")
	ErrInvalidTransition    = newError(KindInvalidTransition, "invalid match status transition")
	ErrApplicantMatched     = newError(KindInvalidTransition, "applicant already has a confirmed match")
	ErrNotParticipant       = newError(KindForbidden, "not a participant of this match")
	ErrNotConfirmed         = newError(KindForbidden, "match is not confirmed")
	ErrEmptyMessage         = newError(KindValidation, "message content is required")
	ErrInviteCodeInvalid    = newError(KindValidation, "invalid or expired invite code")
	ErrInviteCodeNotFound   = newError(KindNotFound, "invite code not found")
	ErrWhitelistExists      = newError(KindAlreadyExists, "email already whitelisted")
	ErrWhitelistNotFound    = newError(KindNotFound, "whitelist entry not found")
	ErrMemberAlreadyHandled = newError(KindInvalidTransition, "member profile already approved")
	ErrEmailExists          = newError(KindAlreadyExists, "email already registered")
	ErrInvalidCredentials   = newError(KindUnauthorized, "invalid email or password")
	ErrDomainNotAllowed     = newError(KindForbidden, "email domain is not allowed")
)

func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// wrapValidation turns a validator error into a ValidationError.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindValidation, Message: "invalid input", Err: err}
}
