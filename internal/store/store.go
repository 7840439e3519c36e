// Package store holds TodoStore, the single source of truth for lists, items,
// sharing and the dashboard preferences.
//
// Every operation is synchronous. Mutations that reference an unknown list or
// item are silent no-ops; validation of titles and content is the caller's job.
// After each effective mutation the full snapshot is handed to the Persister.
// A Store is not safe for concurrent use.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Makepad-fr/todosphere/internal/model"
)

// DefaultUser is the owner of new lists when no current user is configured.
var DefaultUser = model.User{ID: "1", Name: "John Doe", Email: "john@example.com"}

type Store struct {
	lists    []model.TodoList
	selected string
	prefs    model.Preferences

	user      model.User
	persister Persister
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	seed      bool

	err error
}

// Option configures a Store.
type Option func(*Store)

func WithCurrentUser(u model.User) Option { return func(s *Store) { s.user = u } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDGenerator(gen func() string) Option { return func(s *Store) { s.newID = gen } }

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

// WithSeed fills an empty store with the welcome lists on first run.
func WithSeed(seed bool) Option { return func(s *Store) { s.seed = seed } }

// New loads the persisted snapshot and returns a ready store.
func New(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		user:      DefaultUser,
		persister: p,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := p.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.lists = []model.TodoList{}
		if s.seed {
			s.lists = s.seedLists()
			s.persist("seed")
		}
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	default:
		s.lists = snap.Lists
		s.prefs = snap.Preferences
		s.normalize()
	}
	s.logger.Debug("store loaded", "lists", len(s.lists), "user", s.user.ID)
	return s, nil
}

// normalize repairs loaded data so the sharing invariant holds.
func (s *Store) normalize() {
	if s.lists == nil {
		s.lists = []model.TodoList{}
	}
	for i := range s.lists {
		l := &s.lists[i]
		if l.Items == nil {
			l.Items = []model.TodoItem{}
		}
		shared := make([]string, 0, len(l.SharedWith))
		for _, id := range l.SharedWith {
			if id == "" || id == l.OwnerID || slices.Contains(shared, id) {
				continue
			}
			shared = append(shared, id)
		}
		l.SharedWith = shared
	}
}

// seedCollaborator is the user the public example is shared with.
const seedCollaborator = "2"

func (s *Store) seedLists() []model.TodoList {
	now := s.now()
	shared := []string{}
	if s.user.ID != seedCollaborator {
		shared = append(shared, seedCollaborator)
	}
	item := func(content string, done bool) model.TodoItem {
		return model.TodoItem{ID: s.newID(), Content: content, Completed: done, CreatedAt: now}
	}
	return []model.TodoList{
		{
			ID:          s.newID(),
			Title:       "Getting Started",
			Description: "Welcome to TodoSphere! Here are some tasks to get you started.",
			Items: []model.TodoItem{
				item("Create your first todo list", false),
				item("Add some todo items", false),
				item("Share your list with others", false),
			},
			CreatedAt:  now,
			OwnerID:    s.user.ID,
			SharedWith: []string{},
		},
		{
			ID:          s.newID(),
			Title:       "Public Example",
			Description: "This is a public todo list that anyone can view.",
			IsPublic:    true,
			Items:       []model.TodoItem{item("This is visible to everyone", true)},
			CreatedAt:   now,
			OwnerID:     s.user.ID,
			SharedWith:  shared,
		},
	}
}

// ---------------------------------------------------
// reads
// ---------------------------------------------------

// Lists returns a deep copy of every list in insertion order.
func (s *Store) Lists() []model.TodoList {
	out := make([]model.TodoList, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}

func (s *Store) List(listID string) (model.TodoList, bool) {
	if l := s.find(listID); l != nil {
		return l.Clone(), true
	}
	return model.TodoList{}, false
}

// Current resolves the active selection by id at read time.
func (s *Store) Current() (model.TodoList, bool) {
	if s.selected == "" {
		return model.TodoList{}, false
	}
	return s.List(s.selected)
}

func (s *Store) Preferences() model.Preferences { return s.prefs }

func (s *Store) CurrentUser() model.User { return s.user }

// Err returns the error of the most recent save, or nil.
func (s *Store) Err() error { return s.err }

// ---------------------------------------------------
// selection
// ---------------------------------------------------

// Select makes listID the active list. An empty or unknown id clears the selection.
func (s *Store) Select(listID string) {
	if listID == "" || s.find(listID) == nil {
		s.selected = ""
		return
	}
	s.selected = listID
}

// ---------------------------------------------------
// lists
// ---------------------------------------------------

// CreateList appends a new empty list owned by the current user and selects it.
func (s *Store) CreateList(title, description string, isPublic bool) model.TodoList {
	l := model.TodoList{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
		Items:       []model.TodoItem{},
		CreatedAt:   s.now(),
		OwnerID:     s.user.ID,
		SharedWith:  []string{},
	}
	s.lists = append(s.lists, l)
	s.selected = l.ID
	s.persist("create_list")
	return l.Clone()
}

func (s *Store) UpdateList(listID string, patch model.ListPatch) {
	s.mutate("update_list", listID, func(l *model.TodoList) bool {
		if patch.Empty() {
			return false
		}
		patch.Apply(l)
		return true
	})
}

// DeleteList removes the list with its items and shares. The selection is
// cleared only when it pointed at the deleted list.
func (s *Store) DeleteList(listID string) {
	i := s.index(listID)
	if i < 0 {
		s.logger.Debug("delete_list: list not found", "list", listID)
		return
	}
	s.lists = slices.Delete(s.lists, i, i+1)
	if s.selected == listID {
		s.selected = ""
	}
	s.persist("delete_list")
}

// ---------------------------------------------------
// items
// ---------------------------------------------------

func (s *Store) AddTodoItem(listID, content string) {
	s.mutate("add_item", listID, func(l *model.TodoList) bool {
		l.Items = append(l.Items, model.TodoItem{
			ID:        s.newID(),
			Content:   content,
			CreatedAt: s.now(),
		})
		return true
	})
}

func (s *Store) ToggleTodoItem(listID, itemID string) {
	s.mutate("toggle_item", listID, func(l *model.TodoList) bool {
		i := l.ItemIndex(itemID)
		if i < 0 {
			return false
		}
		l.Items[i].Completed = !l.Items[i].Completed
		return true
	})
}

func (s *Store) UpdateTodoItem(listID, itemID, content string) {
	s.mutate("update_item", listID, func(l *model.TodoList) bool {
		i := l.ItemIndex(itemID)
		if i < 0 {
			return false
		}
		l.Items[i].Content = content
		return true
	})
}

func (s *Store) DeleteTodoItem(listID, itemID string) {
	s.mutate("delete_item", listID, func(l *model.TodoList) bool {
		i := l.ItemIndex(itemID)
		if i < 0 {
			return false
		}
		l.Items = slices.Delete(l.Items, i, i+1)
		return true
	})
}

// ---------------------------------------------------
// sharing
// ---------------------------------------------------

// ShareList grants userID access. Repeated calls, the owner and empty ids are no-ops.
func (s *Store) ShareList(listID, userID string) {
	s.mutate("share_list", listID, func(l *model.TodoList) bool {
		if userID == "" || userID == l.OwnerID || l.IsSharedWith(userID) {
			return false
		}
		l.SharedWith = append(l.SharedWith, userID)
		return true
	})
}

func (s *Store) RemoveSharedUser(listID, userID string) {
	s.mutate("unshare_list", listID, func(l *model.TodoList) bool {
		i := slices.Index(l.SharedWith, userID)
		if i < 0 {
			return false
		}
		l.SharedWith = slices.Delete(l.SharedWith, i, i+1)
		return true
	})
}

// ---------------------------------------------------
// preferences
// ---------------------------------------------------

func (s *Store) SetFilter(f model.Filter) {
	s.prefs.Filter = f
	s.persist("set_filter")
}

func (s *Store) SetSort(o model.Sort) {
	s.prefs.Sort = o
	s.persist("set_sort")
}

func (s *Store) SetVisibility(v model.Visibility) {
	s.prefs.Visibility = v
	s.persist("set_visibility")
}

func (s *Store) SetSearchQuery(q string) {
	s.prefs.SearchQuery = q
	s.persist("set_search_query")
}

// ---------------------------------------------------
// internals
// ---------------------------------------------------

func (s *Store) index(listID string) int {
	return slices.IndexFunc(s.lists, func(l model.TodoList) bool { return l.ID == listID })
}

func (s *Store) find(listID string) *model.TodoList {
	if i := s.index(listID); i >= 0 {
		return &s.lists[i]
	}
	return nil
}

// mutate runs fn on the list and persists when fn reports a change.
func (s *Store) mutate(op, listID string, fn func(*model.TodoList) bool) {
	l := s.find(listID)
	if l == nil {
		s.logger.Debug(op+": list not found", "list", listID)
		return
	}
	if !fn(l) {
		s.logger.Debug(op+": no change", "list", listID)
		return
	}
	s.persist(op)
}

func (s *Store) snapshot() *Snapshot {
	return &Snapshot{Lists: s.Lists(), Preferences: s.prefs}
}

func (s *Store) persist(op string) {
	s.err = s.persister.Save(context.Background(), s.snapshot())
	if s.err != nil {
		s.logger.Error("persist snapshot", "op", op, "error", s.err)
		return
	}
	s.logger.Debug("snapshot saved", "op", op, "lists", len(s.lists))
}
