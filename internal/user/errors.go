package user

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the no-op and credential failure cases. Each mutation
// distinguishes "nothing changed" from validation and uniqueness failures.
var (
	ErrEmailNotChanged    = errors.New("new email is the same as the current email")
	ErrPasswordNotChanged = errors.New("new password cannot be the same as the current password")
	ErrPhoneNotChanged    = errors.New("new phone number cannot be the same as the current phone number")
	ErrNameNotChanged     = errors.New("no changes to first or last name were made")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

// NotFoundError reports a reference to a user id that does not exist.
type NotFoundError struct {
	ID int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("user with id %d not found", e.ID)
}

// EmailTakenError reports an email uniqueness conflict with another user.
type EmailTakenError struct {
	Email string
}

func (e EmailTakenError) Error() string {
	return fmt.Sprintf("email %s is already in use", e.Email)
}

// PhoneTakenError reports a phone number uniqueness conflict with another user.
type PhoneTakenError struct {
	PhoneNumber string
}

func (e PhoneTakenError) Error() string {
	return fmt.Sprintf("phone number %s is already in use", e.PhoneNumber)
}

// ValidationErrors collects per-field failures. All offending fields are
// reported together rather than failing on the first one.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(v))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// add records a failure for a field unless one is already present, so the
// first (most specific) message wins.
func (v ValidationErrors) add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}

// orNil returns the collection as an error, or nil when no field failed.
func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
