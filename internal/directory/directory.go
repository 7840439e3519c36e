// Package directory is the read-only set of users a list can be shared with.
package directory

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/store"
)

// DefaultCollaborators is used when the config names none.
var DefaultCollaborators = []model.User{
	{ID: "2", Name: "Jane Smith", Email: "jane@example.com"},
	{ID: "3", Name: "Bob Johnson", Email: "bob@example.com"},
	{ID: "4", Name: "Alice Williams", Email: "alice@example.com"},
}

type Directory struct {
	current model.User
	users   []model.User
}

// New builds a directory. The current user is never offered as a collaborator.
func New(current model.User, collaborators []model.User) *Directory {
	users := make([]model.User, 0, len(collaborators))
	for _, u := range collaborators {
		if u.ID == "" || u.ID == current.ID {
			continue
		}
		if slices.ContainsFunc(users, func(x model.User) bool { return x.ID == u.ID }) {
			continue
		}
		users = append(users, u)
	}
	return &Directory{current: current, users: users}
}

func (d *Directory) Current() model.User { return d.current }

// Users lists the share candidates.
func (d *Directory) Users() []model.User { return slices.Clone(d.users) }

func (d *Directory) Search(query string) []model.User {
	return store.SearchUsers(d.users, query)
}

// Lookup finds any known user, the current one included.
func (d *Directory) Lookup(id string) (model.User, bool) {
	if id == d.current.ID {
		return d.current, true
	}
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// Resolve accepts an id, an email or a full name (case-insensitive).
func (d *Directory) Resolve(ref string) (model.User, bool) {
	ref = strings.TrimSpace(ref)
	if u, ok := d.Lookup(ref); ok {
		return u, true
	}
	for _, u := range append([]model.User{d.current}, d.users...) {
		if strings.EqualFold(u.Email, ref) || strings.EqualFold(u.Name, ref) {
			return u, true
		}
	}
	return model.User{}, false
}

// DisplayName falls back to the raw id for users no longer in the directory.
func (d *Directory) DisplayName(id string) string {
	if u, ok := d.Lookup(id); ok {
		return u.Name
	}
	return id
}
