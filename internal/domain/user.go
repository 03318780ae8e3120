package domain

import (
	"errors"
	"strings"
)

// Common validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

// MinPasswordLength is the identity service's minimum password length.
const MinPasswordLength = 6

// User is an authenticated learner. The ID is issued by the identity
// service; no user data is stored locally.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewUser creates a User from identity service data.
// When name is empty the local part of the email is used as the display name.
// Returns an error if validation fails.
func NewUser(id, email, name string) (*User, error) {
	user := &User{
		ID:    strings.TrimSpace(id),
		Email: strings.TrimSpace(email),
		Name:  strings.TrimSpace(name),
	}

	if user.Name == "" {
		user.Name = DisplayNameFromEmail(user.Email)
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateCredentials checks an email/password pair before it is sent to
// the identity service.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(email) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// DisplayNameFromEmail returns the part of email before the @.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for domain part after @
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	// Check for dot in domain, but not immediately after @ and not at the end
	dotIndex := strings.IndexByte(domainPart, '.')
	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
