package identity

import (
	"net/mail"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the authorization level of a user
type Role int

const (
	RoleCustomer Role = 0
	RoleAdmin    Role = 1
)

// MinProfilePasswordLength is the shortest password accepted on profile updates
const MinProfilePasswordLength = 6

// PasswordCost is the bcrypt cost used for passwords and security answers.
// Tests lower it to bcrypt.MinCost.
var PasswordCost = bcrypt.DefaultCost

// User is a registered storefront account
type User struct {
	shared.AggregateBase
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"type:varchar(50);not null"`
	Address      string `gorm:"type:text;not null"`
	AnswerHash   string `gorm:"type:varchar(255);not null"`
	Role         Role   `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// Registration holds the fields required to create a user
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// Validate checks required fields in the order the storefront reports them
func (r Registration) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return shared.NewValidationError("Name is Required")
	case strings.TrimSpace(r.Email) == "":
		return shared.NewValidationError("Email is Required")
	case r.Password == "":
		return shared.NewValidationError("Password is Required")
	case strings.TrimSpace(r.Phone) == "":
		return shared.NewValidationError("Phone no is Required")
	case strings.TrimSpace(r.Address) == "":
		return shared.NewValidationError("Address is Required")
	case strings.TrimSpace(r.Answer) == "":
		return shared.NewValidationError("Answer is Required")
	}
	return validateEmail(r.Email)
}

// NewUser creates a customer account with hashed credentials
func NewUser(r Registration) (*User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := hashSecret(r.Password)
	if err != nil {
		return nil, err
	}
	answerHash, err := hashSecret(normalizeAnswer(r.Answer))
	if err != nil {
		return nil, err
	}

	user := &User{
		AggregateBase: shared.NewAggregateBase(),
		Name:          strings.TrimSpace(r.Name),
		Email:         NormalizeEmail(r.Email),
		PasswordHash:  passwordHash,
		Phone:         strings.TrimSpace(r.Phone),
		Address:       strings.TrimSpace(r.Address),
		AnswerHash:    answerHash,
		Role:          RoleCustomer,
	}
	user.Raise(NewUserRegisteredEvent(user))

	return user, nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CheckAnswer reports whether answer matches the stored security answer
func (u *User) CheckAnswer(answer string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.AnswerHash), []byte(normalizeAnswer(answer))) == nil
}

// ResetPassword replaces the password without checking length, matching registration rules
func (u *User) ResetPassword(newPassword string) error {
	if newPassword == "" {
		return shared.NewValidationError("New Password is required")
	}
	hash, err := hashSecret(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	u.Raise(NewUserPasswordResetEvent(u))
	return nil
}

// ProfileUpdate carries optional profile changes; empty fields are left untouched
type ProfileUpdate struct {
	Name     string
	Password string
	Phone    string
	Address  string
}

// UpdateProfile applies the non-empty fields of p
func (u *User) UpdateProfile(p ProfileUpdate) error {
	if p.Password != "" && len(p.Password) < MinProfilePasswordLength {
		return shared.NewValidationError("Passsword is required and 6 character long")
	}

	if p.Password != "" {
		hash, err := hashSecret(p.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		u.Name = name
	}
	if phone := strings.TrimSpace(p.Phone); phone != "" {
		u.Phone = phone
	}
	if address := strings.TrimSpace(p.Address); address != "" {
		u.Address = address
	}
	u.Touch()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if role != RoleCustomer && role != RoleAdmin {
		return shared.NewValidationError("Unknown role")
	}
	if u.Role == role {
		return nil
	}
	u.Role = role
	u.Touch()
	u.Raise(NewUserRoleChangedEvent(u))
	return nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeAnswer(answer string) string {
	return strings.TrimSpace(answer)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) || !strings.Contains(addr.Address, ".") {
		return shared.NewValidationError("Invalid Email")
	}
	return nil
}

func hashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), PasswordCost)
	if err != nil {
		return "", shared.WrapDomainError("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}
	return string(hash), nil
}
