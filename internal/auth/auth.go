// Package auth implements the mock sign-in scheme and the persisted session.
//
// Passwords are stored in plaintext unless they carry a bcrypt prefix. This is
// a placeholder scheme for attributing audit entries, not access control.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/model"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHashed reports whether a stored password is a bcrypt hash.
func IsHashed(stored string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func passwordMatches(stored, given string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

// Login returns the user whose email and password match. It fails with
// ErrInvalidCredentials unless exactly one user matches and that user is
// active. Emails compare case-insensitively.
func Login(users []model.AppUser, email, password string) (model.AppUser, error) {
	email = strings.TrimSpace(email)
	var found []model.AppUser
	for _, u := range users {
		if strings.EqualFold(u.Email, email) && passwordMatches(u.Password, password) {
			found = append(found, u)
		}
	}
	if len(found) != 1 {
		return model.AppUser{}, errclass.ErrInvalidCredentials.WithMessage("email or password is incorrect")
	}
	if found[0].Status != model.UserActive {
		return model.AppUser{}, errclass.ErrInvalidCredentials.WithMessage("account is inactive")
	}
	return found[0], nil
}
