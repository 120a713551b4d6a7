package inventory

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/idgen"
	"github.com/nexa-assets/nexa/pkg/model"
)

// Users returns a copy of all application users in insertion order.
func (inv *Inventory) Users() []model.AppUser {
	out := make([]model.AppUser, len(inv.users))
	copy(out, inv.users)
	return out
}

// AddUser appends a new active user who has never logged in. Role defaults
// to Staff. The email must be unique, ignoring case.
func (inv *Inventory) AddUser(ctx context.Context, draft model.AppUser) (model.AppUser, error) {
	u := draft
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Role == "" {
		u.Role = model.RoleStaff
	}
	switch {
	case u.Name == "":
		return model.AppUser{}, errclass.ErrInvalidUser.WithMessage("name is required")
	case u.Email == "":
		return model.AppUser{}, errclass.ErrInvalidUser.WithMessage("email is required")
	case !u.Role.Valid():
		return model.AppUser{}, errclass.ErrInvalidUser.WithMessagef("unknown role %q", u.Role)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return model.AppUser{}, errclass.ErrInvalidUser.WithMessagef("invalid email %q", u.Email)
	}
	for _, existing := range inv.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.AppUser{}, errclass.ErrInvalidUser.WithMessagef("email %q already in use", u.Email)
		}
	}

	u.ID = idgen.NewUserID()
	u.Status = model.UserActive
	u.LastLogin = model.NeverLoggedIn
	inv.users = append(inv.users, u)
	inv.persist(ctx, UsersKey, inv.users)
	inv.log.Info("user added", map[string]any{"id": u.ID, "role": string(u.Role)})
	return u, nil
}

// TouchLogin stamps the user's last login time.
func (inv *Inventory) TouchLogin(ctx context.Context, id string) (model.AppUser, error) {
	for i := range inv.users {
		if inv.users[i].ID == id {
			inv.users[i].LastLogin = inv.now().UTC().Format(time.RFC3339)
			inv.persist(ctx, UsersKey, inv.users)
			return inv.users[i], nil
		}
	}
	return model.AppUser{}, errclass.ErrNotFound.WithMessagef("user %q", id)
}
