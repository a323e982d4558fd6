package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Username and password length bounds. The password ceiling matches bcrypt's
// 72-byte input limit.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Common user validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong  = errors.New("username must be at most 50 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// User represents a registered account.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, only set transiently during signup/updates
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given username and plaintext password,
// generating a fresh ID and timestamps. The caller is responsible for hashing
// the password before the user is stored.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the User carries valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	switch {
	case u.Username == "":
		return ErrEmptyUsername
	case utf8.RuneCountInString(u.Username) < MinUsernameLength:
		return ErrUsernameTooShort
	case utf8.RuneCountInString(u.Username) > MaxUsernameLength:
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		if utf8.RuneCountInString(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		// Byte count, not runes: bcrypt reads at most 72 bytes of input.
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}
