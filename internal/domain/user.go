package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleTeacher    Role = "teacher"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleSuperAdmin
}

// UserStatus tells whether an account may sign in.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// Password length bounds. 72 is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Validation errors for users.
var (
	ErrEmptyUserID      = validationError("user ID cannot be empty")
	ErrEmptyEmail       = validationError("email cannot be empty")
	ErrInvalidEmail     = validationError("invalid email format")
	ErrEmptyFullName    = validationError("full name cannot be empty")
	ErrInvalidRole      = validationError("invalid role")
	ErrInvalidStatus    = validationError("invalid user status")
	ErrPasswordTooShort = validationError("password must be at least 8 characters long")
	ErrPasswordTooLong  = validationError("password must be at most 72 characters long")
	ErrEmptyPassword    = validationError("password cannot be empty")
)

// User is a teacher or administrator account.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Role           Role       `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Status         UserStatus `json:"status"`
	Password       string     `json:"-"` // plaintext, only set while creating or changing a password
	HashedPassword string     `json:"-"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates an active user with a fresh ID.
// The caller is responsible for hashing Password before the user is stored.
func NewUser(email, fullName, password string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		FullName:  strings.TrimSpace(fullName),
		Role:      role,
		Status:    UserStatusActive,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.FullName == "" {
		return ErrEmptyFullName
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if u.Status != UserStatusActive && u.Status != UserStatusBlocked {
		return ErrInvalidStatus
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}

// IsAdmin reports whether the user has the super admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// ValidatePassword checks the length policy for a plaintext password.
func ValidatePassword(password string) error {
	switch n := len(password); {
	case n == 0:
		return ErrEmptyPassword
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
