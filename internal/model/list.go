package model

import (
	"math"
	"slices"
	"strings"
	"time"
)

// TodoList is a named collection of items with visibility and sharing metadata.
// Items keep insertion order.
type TodoList struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"isPublic"`
	Items       []TodoItem `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	OwnerID     string     `json:"ownerId"`
	SharedWith  []string   `json:"sharedWith"` // collaborator user ids, never the owner
}

// ListPatch carries a partial update for a list. Nil fields are left as they are.
type ListPatch struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// Apply merges p into l.
func (p ListPatch) Apply(l *TodoList) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.IsPublic != nil {
		l.IsPublic = *p.IsPublic
	}
}

// Empty reports whether the patch changes nothing.
func (p ListPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.IsPublic == nil
}

// Clone returns a deep copy so callers can't alias the store's slices.
func (l TodoList) Clone() TodoList {
	l.Items = slices.Clone(l.Items)
	l.SharedWith = slices.Clone(l.SharedWith)
	if l.Items == nil {
		l.Items = []TodoItem{}
	}
	if l.SharedWith == nil {
		l.SharedWith = []string{}
	}
	return l
}

// ItemIndex returns the position of the item with the given id, or -1.
func (l *TodoList) ItemIndex(itemID string) int {
	return slices.IndexFunc(l.Items, func(it TodoItem) bool { return it.ID == itemID })
}

func (l TodoList) IsSharedWith(userID string) bool {
	return slices.Contains(l.SharedWith, userID)
}

func (l TodoList) CompletedCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Completed {
			n++
		}
	}
	return n
}

// Progress is the rounded completion percentage; 0 for an empty list.
func (l TodoList) Progress() int {
	if len(l.Items) == 0 {
		return 0
	}
	return int(math.Round(float64(l.CompletedCount()) / float64(len(l.Items)) * 100))
}

// ShareLink builds the public link for a list, e.g. https://host/list/<id>.
func ShareLink(baseURL, listID string) string {
	return strings.TrimRight(baseURL, "/") + "/list/" + listID
}
