package store

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
)

// Derived views. All of them are pure and rebuilt on every call; nothing here
// holds on to store state.

// FilterItems keeps the items matching the completion filter.
func FilterItems(items []model.TodoItem, f model.Filter) []model.TodoItem {
	out := make([]model.TodoItem, 0, len(items))
	for _, it := range items {
		switch f {
		case model.FilterActive:
			if it.Completed {
				continue
			}
		case model.FilterCompleted:
			if !it.Completed {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// SortLists returns a sorted copy. Equal keys keep their relative order.
func SortLists(lists []model.TodoList, o model.Sort) []model.TodoList {
	out := slices.Clone(lists)
	switch o {
	case model.SortNewest:
		slices.SortStableFunc(out, func(a, b model.TodoList) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case model.SortOldest:
		slices.SortStableFunc(out, func(a, b model.TodoList) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case model.SortAlphabetical:
		slices.SortStableFunc(out, func(a, b model.TodoList) int {
			if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
				return c
			}
			return strings.Compare(a.Title, b.Title)
		})
	}
	return out
}

// FilterByVisibility narrows lists by public flag or sharing state. "shared"
// means at least one collaborator, whatever the public flag says.
func FilterByVisibility(lists []model.TodoList, v model.Visibility) []model.TodoList {
	out := make([]model.TodoList, 0, len(lists))
	for _, l := range lists {
		keep := true
		switch v {
		case model.VisibilityPrivate:
			keep = !l.IsPublic
		case model.VisibilityPublic:
			keep = l.IsPublic
		case model.VisibilityShared:
			keep = len(l.SharedWith) > 0
		}
		if keep {
			out = append(out, l)
		}
	}
	return out
}

// SearchLists does a case-insensitive substring match on title and description.
func SearchLists(lists []model.TodoList, query string) []model.TodoList {
	q := strings.ToLower(query)
	out := make([]model.TodoList, 0, len(lists))
	for _, l := range lists {
		if strings.Contains(strings.ToLower(l.Title), q) || strings.Contains(strings.ToLower(l.Description), q) {
			out = append(out, l)
		}
	}
	return out
}

// SearchUsers matches collaborators by name or email, case-insensitively.
func SearchUsers(users []model.User, query string) []model.User {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// Dashboard applies search, then visibility, then sort.
func Dashboard(lists []model.TodoList, p model.Preferences) []model.TodoList {
	return SortLists(FilterByVisibility(SearchLists(lists, p.SearchQuery), p.Visibility), p.Sort)
}

// Dashboard is the list overview under the current preferences.
func (s *Store) Dashboard() []model.TodoList {
	return Dashboard(s.Lists(), s.prefs)
}

// VisibleItems returns the list's items under the current filter.
func (s *Store) VisibleItems(listID string) ([]model.TodoItem, bool) {
	l := s.find(listID)
	if l == nil {
		return nil, false
	}
	return FilterItems(l.Items, s.prefs.Filter), true
}
